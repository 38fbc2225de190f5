package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseName(t *testing.T) {
	assert.Equal(t, "report", BaseName("/data/pdf/report.pdf"))
	assert.Equal(t, "report", BaseName("report.pdf"))
	assert.Equal(t, "report", BaseName("report"))
	assert.Equal(t, "archive.v2", BaseName("archive.v2.pdf"))
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("report.pdf"))
	assert.True(t, IsPDF("REPORT.PDF"))
	assert.False(t, IsPDF("report.txt"))
	assert.False(t, IsPDF("report"))
}
