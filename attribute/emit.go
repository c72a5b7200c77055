package attribute

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Emit writes one id,name,value record per attribute and node id in
// [firstID, lastID], attribute by attribute.
func Emit(w io.Writer, attrs []Attribute, firstID, lastID int) error {
	if lastID < firstID {
		return fmt.Errorf("attribute: empty id range [%d, %d]", firstID, lastID)
	}
	cw := csv.NewWriter(w)
	record := make([]string, 3)
	for _, a := range attrs {
		record[1] = a.Name()
		for id := firstID; id <= lastID; id++ {
			v, err := a.Next()
			if err != nil {
				return fmt.Errorf("node %d: %w", id, err)
			}
			record[0] = strconv.Itoa(id)
			record[2] = v
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
