// Package content holds the records that flow through the content
// pipeline: hot topics in, article drafts and video scripts out.
//
// The records carry no behavior. Stages that produce them live in
// content/stages.
package content
