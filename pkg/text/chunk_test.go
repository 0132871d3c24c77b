package text_test

import (
	"testing"

	"github.com/adrianliechti/contentkit/pkg/text"

	"github.com/stretchr/testify/require"
)

func TestChunkByHeaders(t *testing.T) {
	chunks := text.ChunkByHeaders("Intro text\n# Title A\nBody A\n## Title B\nBody B")

	require.Equal(t, []text.Chunk{
		{Title: "Introduction", Content: "Intro text"},
		{Title: "Title A", Content: "# Title A\n\nBody A"},
		{Title: "Title B", Content: "## Title B\n\nBody B"},
	}, chunks)
}

func TestChunkWithoutHeaders(t *testing.T) {
	chunks := text.ChunkByHeaders("  just some text\n\nmore text  \n")

	require.Equal(t, []text.Chunk{
		{Title: "Document", Content: "just some text\n\nmore text"},
	}, chunks)
}

func TestChunkEmpty(t *testing.T) {
	require.Equal(t, []text.Chunk{{Title: "Document", Content: ""}}, text.ChunkByHeaders(""))
	require.Equal(t, []text.Chunk{{Title: "Document", Content: ""}}, text.ChunkByHeaders(" \n\t\n"))
}

func TestChunkHeaderAtStart(t *testing.T) {
	chunks := text.ChunkByHeaders("# Setup\n\nPlug in the device.\n\n# Usage\nPress the button.\n")

	require.Len(t, chunks, 2)
	require.Equal(t, "Setup", chunks[0].Title)
	require.Equal(t, "# Setup\n\nPlug in the device.", chunks[0].Content)
	require.Equal(t, "Usage", chunks[1].Title)
	require.Equal(t, "# Usage\n\nPress the button.", chunks[1].Content)
}

func TestChunkBlankIntroduction(t *testing.T) {
	chunks := text.ChunkByHeaders("\n\n   \n# Title\nBody")

	require.Len(t, chunks, 1)
	require.Equal(t, "Title", chunks[0].Title)
}

func TestChunkIgnoresDeepHeaders(t *testing.T) {
	chunks := text.ChunkByHeaders("# Manual\nIntro\n### Details\nMore\n#### Notes\nEven more")

	require.Len(t, chunks, 1)
	require.Equal(t, "Manual", chunks[0].Title)
	require.Equal(t, "# Manual\n\nIntro\n### Details\nMore\n#### Notes\nEven more", chunks[0].Content)
}

func TestChunkIgnoresInlineHash(t *testing.T) {
	chunks := text.ChunkByHeaders("Call support # 5 for help.\n  # indented\n#NoSpace\n#   \nEnd")

	require.Len(t, chunks, 1)
	require.Equal(t, "Document", chunks[0].Title)
}

func TestChunkEmptyBody(t *testing.T) {
	chunks := text.ChunkByHeaders("# A\n# B\nText")

	require.Len(t, chunks, 2)
	require.Equal(t, "# A", chunks[0].Content)
	require.Equal(t, "# B\n\nText", chunks[1].Content)
}

func TestChunkCarriageReturns(t *testing.T) {
	chunks := text.ChunkByHeaders("Intro\r\n#\tTitle A \r\nBody A\r\n")

	require.Len(t, chunks, 2)
	require.Equal(t, "Intro", chunks[0].Content)
	require.Equal(t, "Title A", chunks[1].Title)
	require.Equal(t, "# Title A\n\nBody A", chunks[1].Content)
}

func TestChunkDeterministic(t *testing.T) {
	input := "a\n# b\nc\n## d\ne"

	require.Equal(t, text.ChunkByHeaders(input), text.ChunkByHeaders(input))
}

func TestPlainText(t *testing.T) {
	markdown := "# Title\n\nSome **bold** and [a link](https://example.com).\n\n- one\n- two\n\n```\ncode line\n```\n"

	require.Equal(t, "Title\nSome bold and a link.\none\ntwo\ncode line", text.PlainText(markdown))
}
