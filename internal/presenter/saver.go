// Package presenter writes generated parameter sets out for downstream
// consumers.
package presenter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ragram88/bucky/internal/params"
)

// SaveSetsToCSV writes one row per parameter set. Scalar values get a
// single column named after the parameter; vectors expand to NAME_0..NAME_k.
// Column widths are taken from the first set; all sets drawn from one
// specification share the same shapes.
func SaveSetsToCSV(sets []*params.ParameterSet, names []string, filename string) error {
	if len(sets) == 0 {
		return fmt.Errorf("no parameter sets to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	var header []string
	for _, name := range names {
		v := sets[0].Get(name)
		if v.IsScalar() {
			header = append(header, name)
			continue
		}
		for i := range v {
			header = append(header, fmt.Sprintf("%s_%d", name, i))
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, set := range sets {
		record := make([]string, 0, len(header))
		for _, name := range names {
			for _, x := range set.Get(name) {
				record = append(record, strconv.FormatFloat(x, 'f', -1, 64))
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
