package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
)

func TestSplitOwnerRepo_ValidArgument(t *testing.T) {
	owner, name, ok := splitOwnerRepo("octo/repo")
	assert.True(t, ok)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "repo", name)
}

func TestSplitOwnerRepo_RejectsMissingSlash(t *testing.T) {
	_, _, ok := splitOwnerRepo("noslash")
	assert.False(t, ok)
}

func TestSplitOwnerRepo_RejectsLeadingOrTrailingSlash(t *testing.T) {
	_, _, ok := splitOwnerRepo("/repo")
	assert.False(t, ok)

	_, _, ok = splitOwnerRepo("owner/")
	assert.False(t, ok)
}

func TestExitCodeFor_ForgeErrorExitsTwo(t *testing.T) {
	err := apierror.NewForgeError(apierror.ErrForgeNotFound, 404, "/repos/octo/repo")
	assert.Equal(t, 2, exitCodeFor(err))
}

func TestExitCodeFor_OtherErrorExitsOne(t *testing.T) {
	assert.Equal(t, 1, exitCodeFor(assert.AnError))
}
