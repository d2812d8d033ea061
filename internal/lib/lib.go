// Package lib holds the clients for the site's third-party services
// (Resend in email, SmartEmailing in mailinglist) and small shared helpers.
package lib
