// Package openai provides production implementations of the ai interfaces
// backed by OpenAI-compatible APIs via langchaingo. Embeddings, judgment
// and extraction run against any OpenAI-compatible server (Ollama, vLLM,
// LocalAI, the OpenAI API itself); cross-encoder scoring is delegated to
// the ai/rerank package.
package openai
