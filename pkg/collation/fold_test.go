package collation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"technotes/pkg/collation"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase unchanged", in: "shopping", want: "shopping"},
		{name: "uppercase folded", in: "SHOPPING", want: "shopping"},
		{name: "mixed case folded", in: "Shopping", want: "shopping"},
		{name: "accents stripped", in: "Café Résumé", want: "cafe resume"},
		{name: "cyrillic folded", in: "Заметка", want: "заметка"},
		{name: "empty string", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collation.Fold(tt.in))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, collation.Equal("Shopping", "SHOPPING"))
	assert.True(t, collation.Equal("café", "CAFE"))
	assert.True(t, collation.Equal("Trip", "TRIP"))
	assert.False(t, collation.Equal("Trip", "Trips"))
}
