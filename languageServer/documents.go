package languageServer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/DLX-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/DLX-Assembler/util"
)

var documentMap = make(map[string]TextDocumentItem) // map from uri to document

// assembleAndReportDiagnostics reruns the assembler over a document. The
// engine fails fast, so a broken document yields exactly one diagnostic and
// a clean one yields none.
func assembleAndReportDiagnostics(conn *jsonrpc2.Conn, uri DocumentUri) []assembler.Diagnostic {
	doc := documentMap[string(uri)]

	diagnostics := make([]assembler.Diagnostic, 0)
	program, err := assembler.ParseProgram(doc.Text, assembler.DefaultTable())
	if err == nil {
		doc.lastParsedProgram = program
		_, err = program.EncodeListing()
	}
	if err != nil {
		diagnostics = append(diagnostics, assembler.DiagnosticForError(err, doc.Text))
	}

	documentMap[string(uri)] = doc
	return diagnostics
}

func documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	documentMap[string(decodedParams.TextDocument.URI)] = decodedParams.TextDocument

	diagnostics := assembleAndReportDiagnostics(conn, decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Diagnostics: diagnostics,
	})
}

func documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	delete(documentMap, string(decodedParams.TextDocument.URI))
}

func documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	doc := documentMap[string(decodedParams.TextDocument.URI)]
	doc.Text = decodedParams.ContentChanges[0].Text
	doc.Version = decodedParams.TextDocument.Version
	documentMap[string(decodedParams.TextDocument.URI)] = doc

	diagnostics := assembleAndReportDiagnostics(conn, decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	diagnostics := assembleAndReportDiagnostics(conn, decodedParams.TextDocument.URI)
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// reformatDocument aligns unlabeled lines to the longest label column and
// normalizes whitespace. Comments keep their text untouched.
func reformatDocument(uri DocumentUri) string {
	doc := documentMap[string(uri)]

	maxLabelLength := 0
	program, err := assembler.ParseProgram(doc.Text, assembler.DefaultTable())
	if err == nil {
		for label := range program.Symbols {
			if len(label) > maxLabelLength {
				maxLabelLength = len(label)
			}
		}
	}

	lines := strings.Split(doc.Text, "\n")
	for i, line := range lines {
		withoutComment := strings.Split(line, ";")[0]
		withComment := ""
		if strings.Contains(line, ";") {
			withComment = ";" + strings.SplitN(line, ";", 2)[1]
		}
		compact := strings.TrimLeft(withoutComment, " \t")
		compact = strings.ReplaceAll(compact, "\t", " ")
		for strings.Contains(compact, "  ") {
			compact = strings.ReplaceAll(compact, "  ", " ")
		}

		if strings.HasPrefix(compact, ".") {
			lines[i] = compact + withComment
		} else if colon := strings.Index(compact, ":"); colon != -1 {
			afterLabel := strings.TrimLeft(compact[colon+1:], " ")
			if afterLabel == "" {
				lines[i] = compact[:colon+1] + withComment
			} else {
				lines[i] = compact[:colon+1] + " " + afterLabel + withComment
			}
		} else if compact == "" {
			lines[i] = compact + withComment
		} else {
			lines[i] = strings.Repeat(" ", maxLabelLength+2) + compact + withComment
		}
	}
	return strings.Join(lines, "\n")
}

func documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	err := json.Unmarshal(*req.Params, &decodedParams)
	if err != nil {
		rpcErr := jsonrpc2.Error{}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	lines := strings.Split(documentMap[string(decodedParams.TextDocument.URI)].Text, "\n")

	edits := make([]TextEdit, 0)
	edits = append(edits, TextEdit{
		Range: assembler.TextRange{
			Start: assembler.TextPosition{Line: 0, Char: 0},
			End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
		},
		NewText: reformatDocument(decodedParams.TextDocument.URI),
	})

	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("DLX Language Server: reformatted document")
}
