package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fegen.frontend")
	defer teardown()
	//
	fe, err := loadFrontend("", "")
	require.NoError(t, err)
	assert.Equal(t, "Expressions", fe.Grammar.Grammar.Name)
	intp := &Intp{fe: fe}
	assert.True(t, intp.Parse("2 times open a plus b1 close"))
	require.NotNil(t, intp.tree)
	assert.Equal(t, []string{"2", "times", "open", "a", "plus", "b1", "close"}, intp.tree.Leafs())
	assert.False(t, intp.Parse("2 plus times"))
	assert.False(t, intp.Execute(":first"))
	assert.False(t, intp.Execute(":tokens a plus 3"))
	assert.True(t, intp.Execute(":quit"))
}

func TestMissingSpecificationFile(t *testing.T) {
	_, err := loadFrontend("does-not-exist.lex", "")
	assert.Error(t, err)
}
