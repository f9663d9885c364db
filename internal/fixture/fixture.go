// Package fixture loads whitespace-delimited column tables for tests and
// for the moc2dsolve CLI's material input, grounded on the teacher's table.ReadTable column-index reader used by
// render/halo/io.go.
package fixture

import (
	"github.com/luisarose/openmoc2d/internal/xserr"
	"github.com/luisarose/openmoc2d/material"
	"github.com/phil-mansfield/table"
)

// LoadColumns reads the given column indices out of a whitespace-delimited
// table file.
func LoadColumns(file string, colIdxs []int) ([][]float64, error) {
	return table.ReadTable(file, colIdxs, nil)
}

// LoadMaterial reads a multigroup cross-section fixture file with one row
// per energy group and columns [sigma_t, sigma_a, nuSigmaF, chi,
// sigma_s(g -> 0), ..., sigma_s(g -> numGroups-1)].
func LoadMaterial(file string, handle, numGroups, vectorWidth int) (*material.Material, error) {
	colIdxs := make([]int, 4+numGroups)
	for i := range colIdxs {
		colIdxs[i] = i
	}

	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 || len(cols[0]) != numGroups {
		return nil, xserr.New(xserr.InvalidGeometry, "material fixture %s: expected %d rows, got %d", file, numGroups, len(cols[0]))
	}

	sigmaT, sigmaA, nuSigmaF, chi := cols[0], cols[1], cols[2], cols[3]
	sigmaS := make([]float64, numGroups*numGroups)
	for destGroup := 0; destGroup < numGroups; destGroup++ {
		col := cols[4+destGroup]
		for srcGroup := 0; srcGroup < numGroups; srcGroup++ {
			sigmaS[srcGroup*numGroups+destGroup] = col[srcGroup]
		}
	}

	return material.New(handle, numGroups, vectorWidth, sigmaT, sigmaA, nuSigmaF, chi, sigmaS)
}
