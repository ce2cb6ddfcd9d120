package core

// Tag vocabulary of the generation model. These must match the training data byte for byte.
const (
	TagStartReply = "<|sor|>"
	TagEndReply   = "<|eor|>"

	TagStartSelfSubmission = "<|soss|>"
	TagStartLinkSubmission = "<|sols|>"

	TagStartTitle = "<|sot|>"
	TagEndTitle   = "<|eot|>"

	TagStartSelfText = "<|sost|>"
	TagEndSelfText   = "<|eost|>"

	TagStartLink = "<|sol|>"
	TagEndLink   = "<|eol|>"
)

// ReplyTag is appended to a collated history to ask the model for a reply.
const ReplyTag = TagStartReply

// NewSubmissionTag starts a fresh self-text submission. Link submissions are not
// requested because generated URLs rarely resolve.
const NewSubmissionTag = TagStartSelfSubmission + TagStartTitle
