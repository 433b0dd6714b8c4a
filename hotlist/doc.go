// Package hotlist is a pipeline source reading trending topics from a
// Weibo-style hot list API.
//
// The endpoint is called with a bearer token and a 1-based page query
// parameter and must answer with
//
//	{"data": [{"topic_id": "...", "title": "...", "desc": "...", "hot_score": 1.5, ...}]}
//
// Pages are fetched lazily, one at a time, up to MaxPages. The first page
// without records ends the stream. Records missing an id or title are
// dropped.
package hotlist
