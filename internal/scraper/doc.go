// Package scraper turns the nginx documentation site into a docs.Document.
//
// A run loads the documentation index, keeps the module links named in the
// allow-list, then visits each module page in index order and extracts its
// directive blocks. Pages are fetched one at a time through a docs.Fetcher;
// all HTML evaluation happens here with goquery so the extraction rules can
// be tested against static fixtures.
//
// Extraction rules for one directive block (div.directive):
//   - each definition table row becomes an attribute; the syntax row also
//     yields the directive name and its exported field name;
//   - structural directives (server, http, location, listen) are dropped;
//   - a one-character default is a placeholder and is omitted;
//   - the description is the text of the following element siblings up to
//     the next anchor; a block-quote mentioning the commercial subscription
//     drops the whole directive.
package scraper
