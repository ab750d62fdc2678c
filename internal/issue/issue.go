// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	NotAPngId
	CorruptChunkId
	TruncatedFileId
	ChunkNotFoundId
	InvalidChunkTypeId
	InvalidMessageEncodingId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // format documentation relevant to the issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue's Markdown rendered for a terminal using the
// named glamour style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const (
	pngSpecLink       HttpLink = "https://www.w3.org/TR/png/#5DataRep"
	chunkNamingLink   HttpLink = "https://www.w3.org/TR/png/#5Chunk-naming-conventions"
	crcAlgorithmLink  HttpLink = "https://www.w3.org/TR/png/#5CRC-algorithm"
	textChunkSpecLink HttpLink = "https://www.w3.org/TR/png/#11tEXt"
)

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The file you passed does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Use an absolute path, or run pngme from the directory holding the file
~~~
$ pngme print ./dice.png
~~~`,
	}

	notAPngIssue = &Issue{
		id: NotAPngId,
		mdMsg: `
# Not a PNG file!

The first 8 bytes of the file are not the PNG signature
` + "`89 50 4E 47 0D 0A 1A 0A`" + `.

## Common causes:
- The file is a JPEG, GIF or WebP renamed to *.png
- The file was downloaded as an HTML error page
- The file was transferred in text mode and its line endings were rewritten

## Things you can try:
- Inspect the header:
~~~
$ xxd -l 8 ./dice.png
~~~`,
		docLinks: []HttpLink{pngSpecLink},
	}

	corruptChunkIssue = &Issue{
		id: CorruptChunkId,
		mdMsg: `
# Corrupt chunk!

A chunk's stored CRC-32 does not match its type and data. pngme refuses to
rewrite a file it cannot read exactly, so nothing was changed.

## Things you can try:
- Restore the file from the .bak copy pngme writes before in-place edits
- Re-download or re-export the image
- Run ` + "`pngme print --verbose`" + ` to see which chunk failed`,
		docLinks: []HttpLink{crcAlgorithmLink},
	}

	truncatedFileIssue = &Issue{
		id: TruncatedFileId,
		mdMsg: `
# Truncated file!

A chunk declares more data than the file contains. The file was probably cut
short by an interrupted download or copy.

## Things you can try:
- Compare the file size with the original
- Re-download or re-export the image`,
		docLinks: []HttpLink{pngSpecLink},
	}

	chunkNotFoundIssue = &Issue{
		id: ChunkNotFoundId,
		mdMsg: `
# Chunk not found!

No chunk with that type code exists in the file. Type codes are case
sensitive: ` + "`ruSt`" + ` and ` + "`RUST`" + ` are different chunks.

## Things you can try:
- List the chunks in the file:
~~~
$ pngme print ./dice.png
~~~`,
	}

	invalidChunkTypeIssue = &Issue{
		id: InvalidChunkTypeId,
		mdMsg: `
# Invalid chunk type!

A chunk type is exactly 4 ASCII letters. The case of each letter is a flag:

| Letter | Lowercase means |
|--------|-----------------|
| 1st | ancillary (not critical) |
| 2nd | private |
| 3rd | reserved, **must be uppercase** |
| 4th | safe to copy |

## Things you can try:
- Use a private ancillary type such as ` + "`ruSt`" + `
~~~
$ pngme encode ./dice.png ruSt "hello"
~~~`,
		docLinks: []HttpLink{chunkNamingLink},
	}

	invalidMessageEncodingIssue = &Issue{
		id: InvalidMessageEncodingId,
		mdMsg: `
# Message is not valid text!

The chunk data could not be read (or the message could not be written) in the
selected text encoding.

## Things you can try:
- Pick another encoding:
~~~
$ pngme decode ./dice.png tEXt --encoding latin-1
~~~
- Dump the raw bytes instead:
~~~
$ pngme decode ./dice.png ruSt --raw > payload.bin
~~~`,
		docLinks: []HttpLink{textChunkSpecLink},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where pngme looks for its configuration:
~~~
$ pngme config path
~~~
- Recreate a default configuration:
~~~
$ pngme config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

pngme could not read the input or write the output file.

## Things you can try:
- Check file and directory permissions
- Write to another location with ` + "`--output`",
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():           fileNotFoundIssue,
		notAPngIssue.Id():                notAPngIssue,
		corruptChunkIssue.Id():           corruptChunkIssue,
		truncatedFileIssue.Id():          truncatedFileIssue,
		chunkNotFoundIssue.Id():          chunkNotFoundIssue,
		invalidChunkTypeIssue.Id():       invalidChunkTypeIssue,
		invalidMessageEncodingIssue.Id(): invalidMessageEncodingIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
