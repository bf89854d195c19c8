package parsetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tree_Equal(t *testing.T) {
	a := Tree{
		Symbol: "E",
		Children: []*Tree{
			{Terminal: true, Symbol: "id", Token: "x"},
		},
	}
	b := a.Copy()

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(&b))

	b.Children[0].Token = "y"
	assert.False(t, a.Equal(b))
}

func Test_Tree_String_is_stable(t *testing.T) {
	tree := Tree{
		Symbol: "S",
		Children: []*Tree{
			{Terminal: true, Symbol: "id", Token: "x"},
			{Terminal: true, Symbol: "plus", Token: "+"},
		},
	}

	assert.Equal(t, tree.String(), tree.Copy().String())
}
