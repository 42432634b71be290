// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never import adapters; the Notion client, markdown parser
// and storage are reached only through driven ports.
package services
