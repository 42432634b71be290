// Package notion publishes converted pages through the Notion API.
//
// Blocks are mapped from the remote-agnostic domain tree onto the
// notionapi block types. Errors are classified so callers can tell rate
// limiting and authentication failures apart from other rejections.
package notion
