package openai

import (
	"fmt"
	"strings"

	"github.com/tasklink/tasklink/core"
)

const routingSystemPrompt = `You are a role classifier.`

const routingPromptTemplate = `We have these services: %s.
The user query is: '%s'
Return exactly one service from that list if it fits well, else '%s'.
Respond with the service name only, no explanation.`

const decompositionPromptTemplate = `You are a helpful assistant.
The user query is: '%s'
Break this query into 2-4 smaller sub-queries or aspects, each focusing on a distinct requirement.
Return them each on a separate line, with no numbering and no extra text.`

const expansionSystemPrompt = `You are a helpful query rewriter.`

const expansionPromptTemplate = `Given the user's query:
"%s"

Generate %d alternative search queries or rephrasings
that might retrieve relevant but slightly different results.
Separate each query by a newline, with no numbering and no extra text.`

const roleDetectionPromptTemplate = `The following text is from a resume or profile.
Identify up to %d distinct professional roles or services that the candidate can offer.
From the following list of known roles, choose those that best match:
%s
Return your answer as a comma-separated list, in lowercase.

Text snippet:
"""%s"""`

const skillDetectionPromptTemplate = `The following text is from a resume or profile.
Identify up to %d key skills (both technical and soft skills) that the candidate possesses.
Return your answer as a comma-separated list in lowercase.

Text snippet:
"""%s"""`

const profileSummaryPromptTemplate = `You are a professional resume summarizer.
Please provide a concise summary in a single paragraph of the following text.
Focus on highlighting the candidate's main job roles, their key skills, and their professional experience.

Text:
"""%s"""`

const summaryFewShotExample = `Example Q: "I need someone with plumbing experience."
Example A:
Candidate Name: John Smith
Key Strengths: Pipe installation, fixture repairs
Reasoning: They have proven plumbing experience from past roles`

const summaryPromptTemplate = `You are a helpful AI that reads candidate resumes. Use the context below
to answer the user's query in a structured way.

[Few Shot Example]
%s

[User Query]
%s

[Context]
%s

Please provide an answer with:
1) Candidate Name (if known)
2) Key Strengths
3) Reasoning for why they match the query`

const summaryJSONInstructions = `Please return valid JSON with the following keys and nothing else:
{
    "candidate_name": "<string>",
    "key_strengths": ["<string>", "<string>"],
    "reasoning": "<string>"
}`

// buildRoutingPrompt embeds the known service names and the query.
func buildRoutingPrompt(query string, knownServices []string, sentinel string) string {
	return fmt.Sprintf(routingPromptTemplate, strings.Join(knownServices, ", "), query, sentinel)
}

// buildSummaryPrompt lists the candidate chunks as context for the summary.
func buildSummaryPrompt(query string, docs []core.SearchCandidate) string {
	lines := make([]string, len(docs))
	for i, doc := range docs {
		lines[i] = "- " + doc.ChunkText
	}
	return fmt.Sprintf(summaryPromptTemplate, summaryFewShotExample, query, strings.Join(lines, "\n\n"))
}
