// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Rate float64 `validate:"gt=0"`
	Path string  `validate:"required"`
	Date string  `validate:"omitempty,eventdate"`
}

func TestValidateStructValid(t *testing.T) {
	s := sample{Rate: 10, Path: "/data/cache", Date: "2025-10-25"}
	require.NoError(t, ValidateStruct(&s))
}

func TestValidateStructFailures(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantTag string
	}{
		{"zero rate", sample{Rate: 0, Path: "x"}, `"gt"`},
		{"missing path", sample{Rate: 1}, `"required"`},
		{"bad date", sample{Rate: 1, Path: "x", Date: "2025-13-99"}, `"eventdate"`},
		{"not a date", sample{Rate: 1, Path: "x", Date: "tomorrow"}, `"eventdate"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantTag)
		})
	}
}

func TestValidateStructEmptyDateOK(t *testing.T) {
	// omitempty must skip the eventdate check entirely
	s := sample{Rate: 1, Path: "x", Date: ""}
	require.NoError(t, ValidateStruct(&s))
}
