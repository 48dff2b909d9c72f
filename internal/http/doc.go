// Package httpapp provides the HTTP server for the Happy Thoughts API.
//
//	@title						Happy Thoughts API
//	@version					1.0
//	@description				Post short thoughts, read the recent feed and like what you read.
//	@description
//	@description				## Thoughts
//	@description				A thought is 6 to 140 characters of text. The server assigns its id,
//	@description				its creation time and a like counter that starts at zero.
//	@description
//	@description				```bash
//	@description				curl -X POST /thoughts -d '{"text":"Hello world!"}'
//	@description				curl /thoughts
//	@description				curl -X PATCH /thoughts/ID/like
//	@description				```
//
//	@contact.name				Happy Thoughts
//	@license.name				MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@tag.name					Thoughts
//	@tag.description			Create thoughts, read the feed of the 20 newest, and like them.
//
//	@tag.name					Meta
//	@tag.description			Route listing and health.
package httpapp
