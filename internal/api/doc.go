// Package api provides the HTTP handlers and the request pipeline every
// endpoint funnels through: structural validation, actor extraction,
// store invocation, and a single terminal error-mapping step that
// translates the typed failure taxonomy into status codes and sanitized
// messages.
package api
