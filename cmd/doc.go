// Package cmd implements the command-line interface for orderintake.
//
// This package provides the following commands:
//   - auth: Authorize access to the Gmail account
//   - fetch: Fetch inbox emails into the mailbox
//   - identify: Identify sales orders from stored emails
//   - post: Post identified orders to Business Central
//   - run: Run the full pipeline as an agent-driven workflow
//   - version: Display version information
package cmd
