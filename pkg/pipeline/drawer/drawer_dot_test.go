package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textpipe/pkg/pipeline/drawer"
	"github.com/askiada/go-textpipe/pkg/pipeline/measure"
)

func TestDOTDrawerDraw(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := drawer.NewDOTWriterDrawer(&buf)

	require.NoError(t, d.AddStep("a", "first"))
	require.NoError(t, d.AddStep("b", `say "hi"`))
	require.NoError(t, d.AddLink("a", "b"))
	require.NoError(t, d.Draw())

	assert.Equal(t, `strict digraph {
	rankdir="LR";
	"a" [ label="first", ];
	"b" [ label="say \"hi\"", ];
	"a" -> "b" [ ];
}
`, buf.String())
}

func TestDOTDrawerGraphAttribute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := drawer.NewDOTWriterDrawer(&buf)
	d.SetGraphAttribute("rankdir", "TB")

	require.NoError(t, d.Draw())
	assert.Contains(t, buf.String(), `rankdir="TB";`)
}

func TestDOTDrawerErrors(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTWriterDrawer(&bytes.Buffer{})
	require.NoError(t, d.AddStep("a", "a"))

	require.ErrorIs(t, d.AddStep("a", "a"), graph.ErrVertexAlreadyExists)
	require.Error(t, d.AddLink("a", "missing"))
	require.ErrorIs(t, d.MarkFailed("missing"), graph.ErrVertexNotFound)
	require.ErrorIs(t, d.MarkSkipped("a", "missing"), graph.ErrVertexNotFound)
	require.ErrorIs(t, d.SetTotalTime("missing", time.Now()), graph.ErrVertexNotFound)
}

func TestDOTDrawerMarks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := drawer.NewDOTWriterDrawer(&buf)

	require.NoError(t, d.AddStep("a", "a"))
	require.NoError(t, d.AddStep("b", "b"))
	require.NoError(t, d.AddStep("c", "c"))
	require.NoError(t, d.AddLink("a", "b"))
	require.NoError(t, d.AddLink("a", "c"))
	require.NoError(t, d.MarkSkipped("a", "b"))
	require.NoError(t, d.MarkFailed("c"))
	require.NoError(t, d.Draw())

	out := buf.String()
	assert.Contains(t, out, `"b" [ color="grey", fontcolor="grey", label="b", style="dashed", ];`)
	assert.Contains(t, out, `"a" -> "b" [ color="grey", style="dashed", ];`)
	assert.Contains(t, out, `"c" [ color="red", fontcolor="red", label="c", ];`)
	assert.Contains(t, out, `"a" -> "c" [ ];`)
}

func TestDOTDrawerAddMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	msr.AddMetric("fast").AddDuration(time.Millisecond)
	msr.AddMetric("slow").AddDuration(3 * time.Millisecond)
	msr.AddMetric("idle")

	var buf bytes.Buffer
	d := drawer.NewDOTWriterDrawer(&buf)
	require.NoError(t, d.AddStep("fast", "fast"))
	require.NoError(t, d.AddStep("slow", "slow"))
	require.NoError(t, d.AddStep("idle", "idle"))
	require.NoError(t, d.AddMeasure(msr))
	require.NoError(t, d.Draw())

	out := buf.String()
	assert.Contains(t, out, `label=<fast <BR /> <FONT POINT-SIZE="12">1ms</FONT>>`)
	assert.Contains(t, out, `label=<slow <BR /> <FONT POINT-SIZE="12">3ms</FONT>>`)
	assert.Contains(t, out, `"idle" [ label="idle", ];`)
}

func TestDOTDrawerFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	d := drawer.NewDOTDrawer(path)
	require.NoError(t, d.AddStep("a", "a"))
	require.NoError(t, d.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a" [ label="a", ];`)

	bad := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "pipeline.dot"))
	require.Error(t, bad.Draw())
}
