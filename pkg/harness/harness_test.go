package harness_test

import (
	"bytes"
	"strings"
	"testing"

	harness "github.com/justincpresley/lqueue/pkg/harness"
	queue "github.com/justincpresley/lqueue/pkg/queue"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func run(t *testing.T, config *harness.Config, script string) (string, int, *harness.Interpreter) {
	t.Helper()
	var out bytes.Buffer
	it := harness.New(&out, config)
	failed, err := it.Run(strings.NewReader(script))
	require.NoError(t, err)
	return out.String(), failed, it
}

func TestScript(t *testing.T) {
	out, failed, it := run(t, nil, `
new
it b
it a 2
ih c
show
size
sort
rh a
rt c
free
`)
	assert.Equal(t, 0, failed, out)
	assert.Contains(t, out, "l = [c b a a]")
	assert.Contains(t, out, "Queue size = 4")
	assert.Contains(t, out, "l = [a a b c]")
	assert.Contains(t, out, "Removed a from queue")
	assert.Contains(t, out, "l = NULL")
	assert.NoError(t, it.Close())
}

func TestStructuralCommands(t *testing.T) {
	out, failed, it := run(t, nil, `
new
it 1
it 2
it 3
it 4
it 5
swap
reverse
dm
`)
	assert.Equal(t, 0, failed, out)
	assert.Contains(t, out, "l = [2 1 4 3 5]")
	assert.Contains(t, out, "l = [5 3 4 1 2]")
	assert.Contains(t, out, "l = [5 3 1 2]")
	assert.NoError(t, it.Close())
}

func TestDedupPolicies(t *testing.T) {
	out, failed, it := run(t, nil, "new\nit a 2\nit b\nit c 3\ndedup\n")
	assert.Equal(t, 0, failed, out)
	assert.Contains(t, out, "l = [b]")
	assert.NoError(t, it.Close())

	out, failed, it = run(t, nil, "option dedup keep-last\nnew\nit a 2\nit b\nit c 3\ndedup\n")
	assert.Equal(t, 0, failed, out)
	assert.Contains(t, out, "l = [a b c]")
	assert.NoError(t, it.Close())
}

func TestDedupRefusesUnsorted(t *testing.T) {
	out, failed, it := run(t, nil, "new\nit b\nit a\ndedup\n")
	assert.Equal(t, 1, failed)
	assert.Contains(t, out, "ERROR: dedup needs a sorted queue")
	assert.NoError(t, it.Close())
}

func TestRemoveMismatchAndTruncation(t *testing.T) {
	out, failed, it := run(t, nil, "option length 3\nnew\nit abcdef\nit xyz\nrh abc\nrt xy\n")
	assert.Equal(t, 1, failed, out)
	assert.Contains(t, out, "Removed abc from queue")
	assert.Contains(t, out, "ERROR: removed value xyz does not match expected value xy")
	assert.NoError(t, it.Close())
}

func TestNullQueueErrors(t *testing.T) {
	out, failed, it := run(t, nil, "ih a\nrh\nsize\nsort\ndm\nshow\n")
	assert.Equal(t, 5, failed, out)
	assert.Contains(t, out, "calling ih on a null queue")
	assert.Contains(t, out, "l = NULL")
	assert.NoError(t, it.Close())
}

func TestEmptyQueueErrors(t *testing.T) {
	out, failed, it := run(t, nil, "new\nrh\nrt\ndm\n")
	assert.Equal(t, 3, failed, out)
	assert.NoError(t, it.Close())
}

func TestUnknownCommandAndOptions(t *testing.T) {
	out, failed, it := run(t, nil, "bogus\noption fail 200\noption nope 1\noption length x\n# comment\n")
	assert.Equal(t, 4, failed, out)
	assert.Contains(t, out, "unknown command 'bogus'")
	assert.NoError(t, it.Close())
}

func TestQuitStops(t *testing.T) {
	out, failed, it := run(t, nil, "new\nquit\nit a\n")
	assert.Equal(t, 0, failed)
	assert.NotContains(t, out, "cmd> it a")
	assert.NoError(t, it.Close())
}

func TestAllocationFailuresDoNotLeak(t *testing.T) {
	config := harness.GetDefaultConfig()
	config.FailPercent = 30
	config.Seed = 99
	script := strings.Repeat("new\nit a 5\nih b 5\nrh\nrt\nsort\ndedup\n", 20) + "free\n"
	out, _, it := run(t, config, script)
	assert.NotContains(t, out, "still allocated")
	assert.NoError(t, it.Close())
	assert.Equal(t, 0, it.Allocator().LiveBlocks())
	assert.Greater(t, it.Allocator().Refused(), 0)
}

func TestCloseFreesLeftoverQueue(t *testing.T) {
	_, failed, it := run(t, nil, "new\nit a 10\n")
	assert.Equal(t, 0, failed)
	assert.Equal(t, 10, it.Allocator().Live(queue.ElementBlock))
	assert.NoError(t, it.Close())
	assert.Equal(t, 0, it.Allocator().LiveBlocks())
}

func TestHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	it := harness.New(&out, nil)
	require.NoError(t, it.Exec("help"))
	for _, name := range []string{"dedup", "reverse", "sort", "swap", "dm"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestDigestAndVerify(t *testing.T) {
	out, failed, it := run(t, nil, "new\nit a\nit b\ndigest\nverify\nleaks\n")
	assert.Equal(t, 0, failed, out)
	assert.Contains(t, out, "Digest = ")
	assert.Contains(t, out, "Live blocks: sentinel=1 element=2 string=2")
	assert.NoError(t, it.Close())
}
