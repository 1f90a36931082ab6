// Package config loads the editor configuration.
//
// Configuration is read from a TOML or YAML file, chosen by the file
// extension, on top of built-in defaults. Environment variables prefixed
// with FINDBAR_ override file values:
//
//	FINDBAR_SEARCH_CASE_SENSITIVE  search.case_sensitive
//	FINDBAR_SEARCH_WHOLE_WORD      search.whole_word
//	FINDBAR_SEARCH_REGEX           search.regex
//	FINDBAR_VIEW_SCROLL_MARGIN     view.scroll_margin
//	FINDBAR_VIEW_TAB_WIDTH         view.tab_width
//	FINDBAR_LOG_LEVEL              logging.level
//	FINDBAR_LOG_FILE               logging.file
//
// A Watcher reloads the file when it changes on disk.
package config
