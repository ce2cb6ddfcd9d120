package cli

import (
	"fmt"
	"io"

	"github.com/sandevgo/threadbot/internal/service/extract"
	"github.com/sandevgo/threadbot/internal/service/responder"
)

func PrintDecision(out io.Writer, d responder.Decision) {
	fmt.Fprintf(out, "node:    %s\n", d.NodeID)
	fmt.Fprintf(out, "score:   %.3f\n", d.Score)
	fmt.Fprintf(out, "roll:    %.3f\n", d.Roll)
	if !d.Respond {
		fmt.Fprintln(out, "respond: no")
		return
	}
	fmt.Fprintln(out, "respond: yes")
	if d.PromptTokens >= 0 {
		fmt.Fprintf(out, "prompt:  %d tokens\n", d.PromptTokens)
	}
	if d.Reply != "" {
		fmt.Fprintf(out, "reply:\n%s\n", d.Reply)
	}
}

func PrintSubmission(out io.Writer, s extract.Submission) {
	fmt.Fprintf(out, "kind:  %s\n", s.Kind)
	fmt.Fprintf(out, "title: %s\n", s.Title)
	fmt.Fprintf(out, "body:\n%s\n", s.MainText)
}
