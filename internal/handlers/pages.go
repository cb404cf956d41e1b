package handlers

import (
	"fmt"
	"html"

	"github.com/m1z23r/drift/pkg/drift"
)

// renderRelayPage folds the URL fragment into the query string and
// reloads the callback route so the server can read the tokens.
func (h *AuthHandler) renderRelayPage(c *drift.Context) {
	_ = c.HTML(200, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Signing you in...</title>
</head>
<body>
    <p>Signing you in...</p>
    <script>
        var hash = window.location.hash.replace(/^#/, "");
        var search = window.location.search.replace(/^\?/, "");
        var joined = [search, hash, "relay=1"].filter(Boolean).join("&");
        window.location.replace(window.location.pathname + "?" + joined);
    </script>
</body>
</html>`)
}

// renderCallbackPage escapes heading and subtitle before interpolation:
// the failure path reflects provider-supplied error text from the
// redirect query.
func (h *AuthHandler) renderCallbackPage(c *drift.Context, heading, subtitle string, statusCode int) {
	headingColor := "#111827"
	if statusCode >= 400 {
		headingColor = "#991b1b"
	}
	heading = html.EscapeString(heading)
	subtitle = html.EscapeString(subtitle)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Catalynk</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; background: #f9fafb; color: #374151; margin: 0; padding: 40px 20px; }
        .container { max-width: 400px; margin: 0 auto; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 40px 32px; text-align: center; }
        h1 { font-size: 20px; font-weight: 600; color: %s; margin: 0 0 8px 0; }
        .subtitle { color: #6b7280; font-size: 14px; margin: 0 0 4px 0; }
        .close-hint { color: #9ca3af; font-size: 13px; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p class="subtitle">%s</p>
        <p class="close-hint">You can close this window.</p>
    </div>
</body>
</html>`, headingColor, heading, subtitle)

	_ = c.HTML(statusCode, html)
}
