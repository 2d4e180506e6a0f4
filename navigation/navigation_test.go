package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eurodata/site/navigation"
)

func TestSectionsOrder(t *testing.T) {
	t.Parallel()

	var keys []string
	for _, s := range navigation.Sections() {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"home", "economy", "politics", "immigration", "crime", "comparator"}, keys)
	assert.Equal(t, "/", navigation.Sections()[0].Path)
	assert.Equal(t, "/comparator", navigation.Sections()[5].Path)
}

func TestSectionsIsCopy(t *testing.T) {
	t.Parallel()

	s := navigation.Sections()
	s[0].Key = "changed"
	assert.Equal(t, "home", navigation.Sections()[0].Key)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s, ok := navigation.Lookup("crime")
	assert.True(t, ok)
	assert.Equal(t, "/crime", s.Path)

	_, ok = navigation.Lookup("home")
	assert.False(t, ok)

	_, ok = navigation.Lookup("sports")
	assert.False(t, ok)
}

func TestActive(t *testing.T) {
	t.Parallel()

	home := navigation.Sections()[0]
	assert.True(t, home.Active("/"))
	assert.False(t, home.Active("/crime"))

	crime, _ := navigation.Lookup("crime")
	assert.True(t, crime.Active("/crime"))
	assert.False(t, crime.Active("/"))
}
