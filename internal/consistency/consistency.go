// Package consistency cross-checks a schema against its field descriptions.
package consistency

import (
	"github.com/dataroadmap/dsdcheck/internal/descriptions"
	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

// Check verifies that every schema field has a description and every
// description names a schema field. All disagreements are reported in one
// *errors.MismatchError: undescribed fields in schema order, then orphaned
// descriptions in file order.
func Check(s *schema.Schema, d *descriptions.Map) error {
	var mismatches []oerrors.Mismatch

	for _, name := range s.Names() {
		if _, ok := d.Get(name); !ok {
			mismatches = append(mismatches, oerrors.Mismatch{Field: name, Kind: oerrors.UndescribedField})
		}
	}
	for _, name := range d.Keys() {
		if !s.Has(name) {
			mismatches = append(mismatches, oerrors.Mismatch{Field: name, Kind: oerrors.OrphanedDescription})
		}
	}

	if len(mismatches) > 0 {
		return &oerrors.MismatchError{DescriptionsPath: d.Source, Mismatches: mismatches}
	}

	output.Debug("schema and descriptions agree", "fields", s.Len())
	return nil
}
