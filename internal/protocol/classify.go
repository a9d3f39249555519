package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExecResult captures everything the invocation driver observed about one
// worker subprocess.
type ExecResult struct {
	// Stdout is the buffered standard output.
	Stdout []byte
	// Stderr is the buffered standard error.
	Stderr []byte
	// ExitCode is the process exit code, -1 when unknown.
	ExitCode int
	// TimedOut reports that the wall-clock budget expired.
	TimedOut bool
	// Truncated reports that the output ceiling was hit.
	Truncated bool
}

// Classify maps a worker subprocess result onto the outcome union. It is a
// pure function: the same result always yields the same outcome.
//
// Resource-bound terminations are reported first. After that, a stdout that
// parses as a JSON object is authoritative regardless of exit code, because
// the worker emits structured output on both its success and failure paths.
// Unparseable stdout from an abnormal exit is an execution failure;
// unparseable stdout from a clean exit is passed through untouched, since
// plain-text success is legitimate worker behavior.
func Classify(res ExecResult) Outcome {
	if res.TimedOut {
		return Failure("tool execution timed out", KindTimeout, "")
	}
	if res.Truncated {
		return Failure("tool output exceeded the configured size limit", KindOutputTooLarge, "")
	}

	stdout := strings.TrimSpace(string(res.Stdout))
	if line, ok := parseWorkerLine(stdout); ok {
		return classifyLine(line)
	}

	if res.ExitCode != 0 {
		message := strings.TrimSpace(string(res.Stderr))
		if message == "" {
			message = fmt.Sprintf("worker process exited with code %d", res.ExitCode)
		}
		return Failure(message, KindExecutionFailed, "")
	}

	return Raw(stdout)
}

func classifyLine(line workerLine) Outcome {
	if line.Ok != nil {
		if *line.Ok {
			return Success(decodePayload(line.Result))
		}
		message := "worker reported an error"
		if line.Error != nil {
			message = *line.Error
		}
		return Failure(message, line.Type, line.Traceback)
	}

	// Legacy untagged worker output: an "error" key marks failure, any other
	// object is the success payload itself.
	if line.Error != nil {
		return Failure(*line.Error, line.Type, line.Traceback)
	}
	return Success(decodePayload(line.raw))
}

// parseWorkerLine accepts only JSON objects. Other valid JSON (bare numbers,
// arrays) is indistinguishable from incidental plain text and is left to the
// raw/abnormal branches.
func parseWorkerLine(stdout string) (workerLine, bool) {
	if !strings.HasPrefix(stdout, "{") {
		return workerLine{}, false
	}
	var line workerLine
	if err := json.Unmarshal([]byte(stdout), &line); err != nil {
		return workerLine{}, false
	}
	line.raw = json.RawMessage(stdout)
	return line, true
}

func decodePayload(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw)
	}
	return payload
}
