package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Edit the wire connections used for cable labels"
	MsgListShort       = "List stored connections"
	MsgAddShort        = "Add a connection"
	MsgDeleteShort     = "Delete connections"
	MsgEditShort       = "Replace a connection"
	MsgTupleShort      = "Print the label pair of a connection"
	MsgPopulateShort   = "Replace all connections with the records in a file"
	MsgCSVShort        = "Print all connection fields as CSV"
	MsgExportShort     = "Export connections as label CSV"
	MsgSessionShort    = "Edit connections interactively with undo and redo"
	MsgGenConfigShort  = "Generate a settings file"
	MsgGenConfigLong   = "Output the current settings as a TOML file, or write them to the settings location with -w."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgAdded           = "[success]Added[/success] %s\n"
	MsgDeleted         = "[success]Deleted[/success] %d connection(s)\n"
	MsgEdited          = "[success]Replaced[/success] %s\n"
	MsgPopulated       = "[success]Loaded[/success] %d connection(s) from [path]%s[/path]\n"
	MsgExported        = "[success]Exported[/success] %d connection(s) to [path]%s[/path]\n"
	MsgConfigWritten   = "[success]Wrote[/success] settings to [path]%s[/path]\n"
	MsgSaveFailed      = "[warning]Changed in memory but not saved to %s.[/warning] The file may be stale.\n"
	MsgPartialPopulate = "[warning]Populate stopped early; %d connection(s) are loaded but not saved.[/warning]\n"
	MsgVersionLine     = "labelwires version %s\n"
	MsgVersionCommit   = "  commit: %s\n"
	MsgVersionDate     = "  built:  %s\n"
	MsgSessionIntro    = "[title]labelwires session[/title] on [path]%s[/path] (%d connections). Type [code]help[/code] for commands.\n"
	MsgSessionPrompt   = "> "
	MsgSessionBye      = "[muted]Session ended.[/muted]\n"
	MsgSessionUnknown  = "unknown command %q, type help for the list"
	MsgSessionUndone   = "[muted]undone:[/muted] %s\n"
	MsgSessionRedone   = "[muted]redone:[/muted] %s\n"
	MsgSessionSaved    = "[success]Saved[/success] to [path]%s[/path]\n"
	MsgHistoryHeader   = "[title]%s[/title]\n"
	MsgHistoryEmpty    = "  [muted](empty)[/muted]\n"
	MsgHistoryItem     = "  %d. %s\n"
	MsgHistoryCleared  = "[muted]History cleared, the earlier steps no longer apply.[/muted]\n"
	MsgEventAdded      = "  [src]+[/src] %s\n"
	MsgEventDeleted    = "  [error]-[/error] %s\n"
	MsgEventReplaced   = "  [info]~[/info] %s [muted](was %s)[/muted]\n"
	MsgEventPopulated  = "  [info]=[/info] %d connection(s)\n"

	// Error messages
	MsgErrUsage         = "usage: %s"
	MsgErrNoCommand     = "no command specified"
	MsgErrEmptyEndpoint = "endpoint %q has no component, block or terminal"
	MsgErrBadIndex      = "invalid position %q"
	MsgErrIndexRange    = "position %d is out of range (1-%d)"
	MsgErrAmbiguousID   = "id prefix %q matches %d connections"
	MsgErrUnknownID     = "no connection matches %q"
	MsgErrBadDelimiter  = "delimiter must be a single character, got %q"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Settings file (default is the XDG config location)"
	MsgFlagFile      = "Connection file (default is connections.json in the save location)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagAs        = "Label format: wire or cable"
	MsgFlagDelimiter = "CSV delimiter (default from settings)"
	MsgFlagWrite     = "Write the settings file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/delete-example.txt
	msgDeleteExampleRaw string
	MsgDeleteExample    = strings.TrimRight(msgDeleteExampleRaw, "\n")

	//go:embed msgs/edit-example.txt
	msgEditExampleRaw string
	MsgEditExample    = strings.TrimRight(msgEditExampleRaw, "\n")

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimRight(msgExportExampleRaw, "\n")

	//go:embed msgs/populate-long.txt
	msgPopulateLongRaw string
	MsgPopulateLong    = strings.TrimSpace(msgPopulateLongRaw)

	//go:embed msgs/session-long.txt
	msgSessionLongRaw string
	MsgSessionLong    = strings.TrimSpace(msgSessionLongRaw)

	//go:embed msgs/session-help.md
	MsgSessionHelp string

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
