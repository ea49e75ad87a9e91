// Package main hosts the first pipeline stage: it downloads the NGINX
// documentation index, visits every allow-listed module page one at a time,
// and writes the extracted directives to documentation.json.
//
// Operational notes:
//   - Fetcher: headless Chrome by default (fetcher.kind=headless). Set
//     HEADLESS=false to watch the browser. HEADLESS must be a boolean
//     (true/false/1/0); any other value is a config error. fetcher.kind=colly
//     fetches the static pages without a browser.
//   - Output: the document is written only after every module succeeded. Any
//     failure logs the error and exits with status 1.
//   - Configuration: NGXDOCS_* env vars, an optional .env file, or a config
//     file named by NGXDOCS_CONFIG.
package main
