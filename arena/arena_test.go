package arena_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikkoParkkola/nab-sub001/arena"
)

func TestArena_AllocCopiesAndReturnsView(t *testing.T) {
	t.Parallel()

	a := arena.New()

	s1 := a.AllocString("hello")
	s2 := a.AllocString(" world")

	assert.Equal(t, "hello", string(s1))
	assert.Equal(t, " world", string(s2))
}

func TestArena_AllocIsACopy(t *testing.T) {
	t.Parallel()

	a := arena.New()

	src := []byte("mutable")
	view := a.Alloc(src)
	src[0] = 'X'

	assert.Equal(t, "mutable", string(view), "arena owns its copy")
}

func TestArena_BytesAllocatedMonotone(t *testing.T) {
	t.Parallel()

	a := arena.New()

	var sum, prev int
	for i := 0; i < 100; i++ {
		chunk := strings.Repeat("x", i%17+1)
		a.AllocString(chunk)
		sum += len(chunk)

		assert.GreaterOrEqual(t, a.BytesAllocated(), prev)
		prev = a.BytesAllocated()
	}

	assert.Equal(t, sum, a.BytesAllocated(), "committed bytes equal the sum of allocated chunk lengths")
}

func TestArena_GrowthPreservesEarlierViews(t *testing.T) {
	t.Parallel()

	// Tiny first segment forces several growth steps.
	a := arena.WithCapacity(16)

	views := make([][]byte, 0, 200)
	for i := 0; i < 200; i++ {
		views = append(views, a.AllocString(fmt.Sprintf("chunk-%03d", i)))
	}

	// Views handed out before growth remain intact: committed bytes are
	// never copied when the arena grows.
	for i, v := range views {
		assert.Equal(t, fmt.Sprintf("chunk-%03d", i), string(v))
	}
}

func TestArena_LargeAllocation(t *testing.T) {
	t.Parallel()

	a := arena.WithCapacity(1024)
	large := strings.Repeat("x", 1<<20)

	view := a.AllocString(large)
	require.Len(t, view, 1<<20)
	assert.Equal(t, large, string(view))
}

func TestBuffer_PartsAndConcatenation(t *testing.T) {
	t.Parallel()

	a := arena.New()
	buf := arena.NewBuffer(a)

	assert.Equal(t, 0, buf.PartCount())
	assert.Equal(t, "", buf.String())

	chunks := []string{"HTTP/1.1 200 OK\r\n", "Content-Type: text/html\r\n", "\r\n", "<html><body>Hello</body></html>"}
	for _, c := range chunks {
		buf.PushString(c)
	}

	assert.Equal(t, len(chunks), buf.PartCount())
	assert.Equal(t, strings.Join(chunks, ""), buf.String())
	assert.Equal(t, len(strings.Join(chunks, "")), buf.Len())
}

func TestBuffer_ManyPartsExactConcatenation(t *testing.T) {
	t.Parallel()

	a := arena.New()
	buf := arena.NewBuffer(a)

	var want strings.Builder
	for i := 0; i < 10000; i++ {
		chunk := fmt.Sprintf("part-%d;", i)
		buf.PushString(chunk)
		want.WriteString(chunk)
	}

	assert.Equal(t, 10000, buf.PartCount())
	assert.Equal(t, want.String(), buf.String())
}

func TestBuffer_EmptyPushIsNotAPart(t *testing.T) {
	t.Parallel()

	a := arena.New()
	buf := arena.NewBuffer(a)

	buf.PushString("hello")
	buf.PushString("")
	buf.PushString("world")

	assert.Equal(t, 2, buf.PartCount())
	assert.Equal(t, "helloworld", buf.String())
}

func TestBuffer_StringMemoizedUntilNextPush(t *testing.T) {
	t.Parallel()

	a := arena.New()
	buf := arena.NewBuffer(a)

	buf.PushString("one")
	first := buf.String()
	assert.Equal(t, "one", first)
	assert.Equal(t, "one", buf.String())

	buf.PushString("+two")
	assert.Equal(t, "one+two", buf.String())
}

func TestBuffer_Reset(t *testing.T) {
	t.Parallel()

	a := arena.New()
	buf := arena.NewBuffer(a)

	buf.PushString("stale")
	buf.Reset()

	assert.Equal(t, 0, buf.PartCount())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, "", buf.String())

	buf.PushString("fresh")
	assert.Equal(t, "fresh", buf.String())
}
