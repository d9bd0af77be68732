// Package cli provides the interactive cockpdf command-line client.
//
// The App drives a services.API facade from a simple REPL. The prompt shows
// whether the backend is reachable (a background watcher probes
// /health/server) and whether the session is authenticated:
//
//	cockpdf (alice authed online)>
//
// Commands
//
//	help                  show available commands
//	health                check server, database and object storage
//	register              create an account
//	login                 start a session
//	logout                end the session and forget stored cookies
//	whoami                show the current user
//	status                re-check authentication and show session details
//	upload <image>        upload an image
//	images                list uploaded images
//	delete <url>          delete an uploaded image
//	ocr <image>           convert an image to a PDF in the output directory
//	get <url> [path]      download an uploaded image
//	exit | quit           leave the program
//
// Every command runs under its own timeout (config.RequestTimeout). Errors
// are rendered through client.Classify, see describeError.
package cli
