// Command chzzk queries the CHZZK live API from the terminal.
//
// Usage:
//
//	chzzk status <channel-id>...   live status for one or more channels
//	chzzk detail <channel-id>      full live detail, including playback media
//	chzzk watch <channel-id>       poll live status and report OPEN/CLOSE changes
//	chzzk config show              print the effective configuration
//
// Configuration is read from $XDG_CONFIG_HOME/chzzk/config.toml (or --config)
// and overridden by CHZZK_* and LOG_* environment variables. Authenticated
// calls need all three NID cookies:
//
//	CHZZK_NID_SES=... CHZZK_NID_AUT=... CHZZK_NID_JKL=... chzzk detail <channel-id>
//
// Output defaults to a table on a terminal and JSON otherwise. --jq applies a
// jq filter to the JSON form and prints one result per line.
package main
