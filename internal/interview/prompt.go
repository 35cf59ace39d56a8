package interview

import _ "embed"

// Instructions is the interviewer persona handed to the remote agent
// at creation time. It defines the discovery stages and the delimited
// output format the spec extractor looks for.
//
//go:embed instructions.md
var Instructions string
