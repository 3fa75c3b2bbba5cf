package worddiff

import (
	"fmt"
	"strings"
)

// validate checks the Diff invariants and returns an error on the first violation.
func (d Diff) validate() error {
	var oldConcat, newConcat strings.Builder
	for i, sp := range d.Spans {
		if strings.Contains(sp.OldText, "\n") {
			return fmt.Errorf("span[%d]: OldText contains newline", i)
		}
		if strings.Contains(sp.NewText, "\n") {
			return fmt.Errorf("span[%d]: NewText contains newline", i)
		}

		switch sp.Op {
		case OpEqual:
			if sp.OldText != sp.NewText {
				return fmt.Errorf("span[%d]: OpEqual requires OldText==NewText", i)
			}
		case OpInsert:
			if sp.OldText != "" || sp.NewText == "" {
				return fmt.Errorf("span[%d]: OpInsert requires OldText==\"\" and NewText!=\"\"", i)
			}
		case OpDelete:
			if sp.OldText == "" || sp.NewText != "" {
				return fmt.Errorf("span[%d]: OpDelete requires OldText!=\"\" and NewText==\"\"", i)
			}
		case OpReplace:
			if sp.OldText == "" || sp.NewText == "" {
				return fmt.Errorf("span[%d]: OpReplace requires OldText!=\"\" and NewText!=\"\"", i)
			}
		}

		oldConcat.WriteString(sp.OldText)
		newConcat.WriteString(sp.NewText)
	}

	if d.OldText != oldConcat.String() {
		return fmt.Errorf("diff: spans do not reconstruct OldText")
	}
	if d.NewText != newConcat.String() {
		return fmt.Errorf("diff: spans do not reconstruct NewText")
	}
	return nil
}
