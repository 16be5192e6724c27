package pagequery

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindFrom(t *testing.T, rawQuery string) (Params, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return Bind(c)
}

func TestBindDefaults(t *testing.T) {
	p, err := bindFrom(t, "")
	require.NoError(t, err)
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 10, p.Size)
}

func TestBindExplicit(t *testing.T) {
	p, err := bindFrom(t, "from=20&size=5")
	require.NoError(t, err)
	assert.Equal(t, 20, p.From)
	assert.Equal(t, 5, p.Size)
}

func TestBindRejectsBadValues(t *testing.T) {
	_, err := bindFrom(t, "from=-1")
	assert.Error(t, err)

	_, err = bindFrom(t, "size=0")
	assert.Error(t, err)

	_, err = bindFrom(t, "size=abc")
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	cases := []struct {
		from, size    int
		limit, offset uint64
	}{
		{0, 10, 10, 0},
		{10, 10, 10, 10},
		{20, 10, 10, 20},
		// A from inside a page snaps back to the page boundary.
		{25, 10, 10, 20},
		{9, 10, 10, 0},
		{7, 3, 3, 6},
	}
	for _, tc := range cases {
		limit, offset := Window(tc.from, tc.size)
		assert.Equal(t, tc.limit, limit, "from=%d size=%d", tc.from, tc.size)
		assert.Equal(t, tc.offset, offset, "from=%d size=%d", tc.from, tc.size)
	}
}
