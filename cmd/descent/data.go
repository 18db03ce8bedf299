package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/descent/core/model"
	"github.com/YuminosukeSato/descent/core/vector"
	"github.com/YuminosukeSato/descent/pkg/errors"
)

// readRows parses every record of a numeric CSV file. Blank lines are
// skipped by encoding/csv; the first record is dropped when header is set.
func readRows(path string, header bool) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	r.FieldsPerRecord = -1

	var rows [][]float64
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		if header && line == 1 {
			continue
		}
		row := make([]float64, len(rec))
		for j, field := range rec {
			row[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.NewValueError("readCSV",
					fmt.Sprintf("%s: record %d, column %d: %q is not a number", path, line, j+1, field))
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.NewModelError("readCSV", path, errors.ErrEmptyData)
	}
	return rows, nil
}

// readTrainingSet reads rows of the form feature...,label.
func readTrainingSet(path string, header bool) (model.TrainingSet, error) {
	rows, err := readRows(path, header)
	if err != nil {
		return nil, err
	}
	set := make(model.TrainingSet, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, errors.NewValueError("readTrainingSet",
				fmt.Sprintf("%s: record %d needs at least one feature and a label", path, i+1))
		}
		d := len(row) - 1
		set[i] = model.Example{X: vector.Vector(row[:d]), Y: row[d]}
	}
	return set, nil
}

// readInputs reads rows of dim features. A trailing label column, as in a
// training file, is ignored.
func readInputs(path string, header bool, dim int) ([]vector.Vector, error) {
	rows, err := readRows(path, header)
	if err != nil {
		return nil, err
	}
	inputs := make([]vector.Vector, len(rows))
	for i, row := range rows {
		switch len(row) {
		case dim, dim + 1:
			inputs[i] = vector.Vector(row[:dim])
		default:
			return nil, errors.NewDimensionError("readInputs", dim, len(row), 1)
		}
	}
	return inputs, nil
}
