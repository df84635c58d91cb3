package industry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/industry"
)

func TestValidSlug(t *testing.T) {
	t.Parallel()
	assert.True(t, industry.ValidSlug("retail"))
	assert.True(t, industry.ValidSlug("oil-and-gas"))
	assert.False(t, industry.ValidSlug("Retail"))
	assert.False(t, industry.ValidSlug("-retail"))
	assert.False(t, industry.ValidSlug("oil--gas"))
	assert.False(t, industry.ValidSlug(""))
}
