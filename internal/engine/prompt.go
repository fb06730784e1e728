package engine

// systemPrompt grounds the model in the retrieved context. It must refuse to
// fabricate when the context is insufficient, and clean up encoding artifacts
// the PDF extraction may have introduced.
const systemPrompt = `You are an assistant for question-answering tasks. ` +
	`Use the following pieces of retrieved context to answer the question. ` +
	`If you don't know the answer, just say that you don't know, don't try to make up an answer. ` +
	`Rephrase the context, especially the accents which can be parsed poorly.`

// contextDivider separates retrieved chunks inside the prompt.
const contextDivider = "\n\n---\n\n"

func buildUserPrompt(context, question string) string {
	return "Here is the context: " + context + "\n\nHere is the question: " + question
}
