package itemspec

import "fmt"

// ParseError reports where and why parsing the item-spec grammar failed.
type ParseError struct {
	Offset   int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("item spec parse error at offset %d: expected %s", e.Offset, e.Expected)
}
