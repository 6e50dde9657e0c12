// Package chromepdf renders HTML, local files and web pages to PDF with
// headless Chrome, through interchangeable backends that share one set of
// rendering options.
//
// # Backends
//
// Each backend implements [Renderer] and embeds [RenderOptions]:
//
//   - browserless.PDF posts JSON to a hosted Browserless service
//   - chrome.Chrome runs the local chrome-pdf command-line tool
//   - devtools.Converter drives a local browser over the DevTools Protocol
//
// Options are set through chainable setters and read at render time:
//
//	client, err := browserless.NewClient(apiKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := browserless.NewPDF(client)
//	pdf.SetFormat("Letter").SetMargin("1cm", "2cm").SetLandscape(true)
//
//	stream, err := pdf.RenderURL(ctx, "https://example.com")
//	stream, err  = pdf.RenderContent(ctx, "<h1>Hello</h1>")
//	stream, err  = pdf.RenderFile(ctx, "report.html")
//
// Unset options are left out of the request, so the backend's own defaults
// apply. Every backend starts from format A4 with background graphics on.
//
// # Results
//
// Render calls return a stream that the caller must close. [Collect] reads
// it into a [Result]:
//
//	res, err := chromepdf.Collect(stream)
//	res.Bytes()                       // []byte
//	res.Base64()                      // base64 string (RFC 4648)
//	res.WriteToFile("out.pdf", 0o644) // write to disk
//
// # Errors
//
// Failures are reported as [*APIError] for the remote service,
// [*ProcessError] for a local binary, [*ConfigError] for unknown options or
// invalid values and [*FileError] for unreadable inputs or protected
// outputs. Use [errors.As] to inspect them.
package chromepdf
