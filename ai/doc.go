// Copyright 2026 Arkestra Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the managed AI services the pipeline
// delegates to.
//
// The pipeline performs no document understanding or embedding of its own;
// both are calls to external services behind two interfaces:
//
//   - LayoutAnalyzer: converts a PDF into structured page text and tables
//   - Embedder: generates vector embeddings from text
//
// # Implementation Packages
//
//   - ai/gemini: layout analysis via the Gemini API
//   - ai/openai: embeddings via OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors (gemini.NewAnalyzer, openai.NewEmbedder) return the
// interface types to keep callers decoupled from the concrete clients. Mock
// constructors return concrete types so tests can inject behavior and assert
// on call counts.
package ai
