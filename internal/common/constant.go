package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// FlashCookieName is the cookie carrying a one-shot user-facing message.
const FlashCookieName = "flash"

// DefaultStatusName is assigned to donations created without an explicit status.
const DefaultStatusName = "Received"
