package view

// ExpiredLinkHTML is the body served when a link is expired, unknown, or
// unreadable and no expired-redirect URL is configured. Clients test against
// this exact string, so it stays a constant rather than a template.
const ExpiredLinkHTML = "<p>This link has expired.</p>"
