// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id names one entry in the issue catalog. Commands attach an Id to the
// errors they return so the CLI can render the matching card before
// exiting.
type Id int

const (
	ToolchainNotFoundId Id = iota + 1
	ToolNotFoundId
	PrefixNotFoundId
	DataRootMissingId
	ConfigLoadFailedId
	ProjectFileInvalidId
	CompileFailedId
	VersionProbeFailedId
)

// MarkdownMsg is a card body in Markdown, rendered for the terminal
// through glamour.
type MarkdownMsg string

// Issue is one catalog entry: a diagnosis of a known failure mode plus
// the commands that usually resolve it.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render converts the card body to styled terminal output. stylePath
// accepts the glamour style names ("dark", "light", "notty") or a path
// to a style JSON file.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// render is swapped in tests so they assert on card content without
// exercising glamour itself.
var render = glamour.Render

var issues = map[Id]*Issue{
	ToolchainNotFoundId: {
		id: ToolchainNotFoundId,
		mdMsg: `
# No LaTeX toolchain found!

We probed the installation prefix but found no LaTeX executables.

## Locations we check (in order):
1. <prefix>/share/texenv/bin/<platform> (bundled layout)
2. <prefix>/bin (flat layout)

## Things you can try:
- Inspect the installation:
~~~
$ texenv doctor
~~~

- Point texenv at the right prefix:
~~~
$ texenv --prefix /opt/texenv which
~~~

- Or set it once in your environment:
~~~
$ export TEXENV_PREFIX=/opt/texenv
~~~

- Reinstall the LaTeX bundle into the prefix if the directories are gone`,
	},

	ToolNotFoundId: {
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

The requested tool is not part of the discovered LaTeX toolchain.

## Things you can try:
- List every tool the toolchain provides:
~~~
$ texenv tools
~~~

- Check for typos in the tool name (lookups ignore case, so
  'pdflatex' and 'pdfLaTeX' are the same tool)
- If the tool should exist, verify the bundle installation:
~~~
$ texenv doctor
~~~`,
	},

	PrefixNotFoundId: {
		id: PrefixNotFoundId,
		mdMsg: `
# Installation prefix could not be resolved!

No prefix was given and none could be derived from the environment.

## How the prefix is resolved (in order):
1. The --prefix flag
2. The TEXENV_PREFIX environment variable
3. Two directories above the running executable

## Things you can try:
- Pass the prefix explicitly:
~~~
$ texenv --prefix /opt/texenv doctor
~~~

- Export TEXENV_PREFIX in your shell profile:
~~~
$ export TEXENV_PREFIX=/opt/texenv
~~~`,
	},

	DataRootMissingId: {
		id: DataRootMissingId,
		mdMsg: `
# LaTeX data tree is missing!

Executables were found, but the share/texenv data tree (fonts, class
files, style packages) is not where it should be. Compilation will fail
without it.

## Things you can try:
- Inspect what was found and what is missing:
~~~
$ texenv doctor
~~~

- Reinstall the LaTeX bundle; a partial unpack commonly causes this
- If the data tree lives elsewhere, point texenv at the right prefix:
~~~
$ texenv --prefix /path/to/install doctor
~~~`,
	},

	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the texenv configuration file.

## Configuration file locations:
- Linux: ~/.config/texenv/config.cue
- macOS: ~/Library/Application Support/texenv/config.cue
- Windows: %APPDATA%\texenv\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ texenv config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/texenv/config.cue
~~~

## Example configuration:
~~~cue
prefix: "/opt/texenv"

compile: {
  extra_args: "-shell-escape"
  interaction: "nonstopmode"
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	},

	ProjectFileInvalidId: {
		id: ProjectFileInvalidId,
		mdMsg: `
# Invalid project file!

A texenv.toml was found but could not be parsed.

## Common issues:
- Invalid TOML syntax (unclosed strings, stray brackets)
- Unknown keys (we reject them so typos fail loudly)

## Things you can try:
- Check the error message above for the exact line
- Compare against a minimal valid manifest:
~~~toml
main = "thesis.tex"
extra-args = ["-shell-escape"]

[search-path]
texmf-home = "./texmf"
tex-inputs = ["./styles"]
~~~`,
	},

	CompileFailedId: {
		id: CompileFailedId,
		mdMsg: `
# Compilation failed!

The LaTeX engine exited with an error.

## Common causes:
- Syntax errors in the document (check the engine log above)
- A missing style package or class file
- A missing input file referenced by \input or \include

## Things you can try:
- Read the first error in the engine output; later errors usually cascade
- Check the .log file next to your document for full details
- If a package is missing, verify the bundle provides it:
~~~
$ texenv doctor
~~~

- Re-run interactively to step through errors:
~~~
$ texenv compile --pty thesis.tex
~~~`,
	},

	VersionProbeFailedId: {
		id: VersionProbeFailedId,
		mdMsg: `
# LaTeX engine failed its version probe!

The primary tool was found on disk but refused to run. The binary may be
built for a different platform, truncated, or missing shared libraries.

## Things you can try:
- Run the probe by hand to see the raw failure:
~~~
$ texenv which --primary
$ <printed path> --version
~~~

- Verify the bundle matches your operating system and architecture
- Reinstall the LaTeX bundle into the prefix`,
	},
}

// Values returns every catalog entry in ascending Id order.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

// Get returns the catalog entry for id, or nil when no card exists.
func Get(id Id) *Issue {
	return issues[id]
}
