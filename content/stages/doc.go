// Package stages provides the model-backed stages of the content pipeline:
//
//   - TopicExplainer turns a *content.HotTopic into a markdown *content.ArticleDraft.
//   - ScriptWriter turns a *content.ArticleDraft into a *content.VideoScript.
//   - Packager pairs a draft with the script written from it.
//
// Each stage is a modelstage.Stage and plugs directly into a pipeline.Engine.
package stages
