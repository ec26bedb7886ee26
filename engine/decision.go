package engine

import "time"

// node identifies one step of the decision graph. Names mirror spec
// node codes (B13, C4, G7, ...) so traces and tests can refer to them.
type node uint8

const (
	nB13 node = iota
	nB12
	nB11
	nB10
	nB9
	nB8
	nB7
	nB6
	nB5
	nB4
	nB3
	nC3
	nC4
	nD4
	nD5
	nE5
	nE6
	nF6
	nF7
	nG7
	nG8
	nG9
	nG11
	nH7
	nH10
	nH11
	nH12
	nI4
	nI7
	nI12
	nI13
	nJ18
	nK5
	nK7
	nK13
	nL5
	nL7
	nL13
	nL14
	nL15
	nL17
	nM5
	nM7
	nM16
	nM20
	nN5
	nN11
	nN16
	nO14
	nO16
	nO18
	nO20
	nP3
	nP11
	nDone

	maxVisits = 50
)

var nodeNames = map[node]string{
	nB13: "B13", nB12: "B12", nB11: "B11", nB10: "B10", nB9: "B9", nB8: "B8",
	nB7: "B7", nB6: "B6", nB5: "B5", nB4: "B4", nB3: "B3",
	nC3: "C3", nC4: "C4", nD4: "D4", nD5: "D5", nE5: "E5", nE6: "E6",
	nF6: "F6", nF7: "F7",
	nG7: "G7", nG8: "G8", nG9: "G9", nG11: "G11",
	nH7: "H7", nH10: "H10", nH11: "H11", nH12: "H12",
	nI4: "I4", nI7: "I7", nI12: "I12", nI13: "I13", nJ18: "J18",
	nK5: "K5", nK7: "K7", nK13: "K13",
	nL5: "L5", nL7: "L7", nL13: "L13", nL14: "L14", nL15: "L15", nL17: "L17",
	nM5: "M5", nM7: "M7", nM16: "M16", nM20: "M20",
	nN5: "N5", nN11: "N11", nN16: "N16",
	nO14: "O14", nO16: "O16", nO18: "O18", nO20: "O20",
	nP3: "P3", nP11: "P11",
	nDone: "done",
}

type nodeFunc func(ctx *Context, ctrl Controller, e *Engine) node

// Engine runs the decision graph for one (Context, Controller) pair. It
// holds no per-request state of its own, only process-wide collaborators,
// so one Engine safely serves many concurrent requests.
type Engine struct {
	Config  EngineConfig
	Metrics Metrics
	Logger  Logger
	table   map[node]nodeFunc
}

// EngineConfig carries the injected configuration the decision graph and
// emitter consult, replacing the source's hidden global configuration
// reads per §9 REDESIGN FLAGS.
type EngineConfig struct {
	ServerHeader  string
	UseSendfile   string // "disabled" | "in-process" | "offload"
	FileChunkSize int
	IdleTimeout   time.Duration
}

// NewEngine builds an Engine with the given configuration and
// collaborators. A nil Metrics is replaced with NoopMetrics; a nil Logger
// is kept and disables the engine's logging.
func NewEngine(cfg EngineConfig, metrics Metrics, log Logger) *Engine {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	e := &Engine{Config: cfg, Metrics: metrics, Logger: log}
	e.table = buildNodeTable()
	return e
}

// Decide traverses the decision graph to completion, leaving ctx.Status,
// ctx.RespHeader and ctx.RespBody fully populated. finish_request is
// always invoked before returning, on every exit path.
func (e *Engine) Decide(ctx *Context, ctrl Controller) {
	cur := nB13
	visits := 0
	for cur != nDone {
		if ctx.Halted {
			ctx.Status = ctx.HaltStatus
			break
		}
		visits++
		if visits > maxVisits {
			ctx.Status = StatusInternalServerError
			if e.Logger != nil {
				e.Logger.Error("decision graph exceeded node-visit bound", "visits", visits)
			}
			break
		}
		fn, ok := e.table[cur]
		if !ok {
			ctx.Status = StatusInternalServerError
			break
		}
		next := fn(ctx, ctrl, e)
		if e.Metrics != nil {
			e.Metrics.ObserveDecision(nodeNames[cur], nodeNames[next])
		}
		cur = next
	}
	// finish_request runs on every exit path, success or error, and may
	// replace the status by mutating ctx.Status directly.
	ctrl.FinishRequest(ctx)
	if ctx.Status == 0 {
		ctx.Status = StatusOK
	}
	if vary := ctx.Vary(); vary != "" {
		ctx.RespHeader.Set("Vary", vary)
	}
	e.Metrics.ObserveStatus(ctx.Status)
}

func buildNodeTable() map[node]nodeFunc {
	return map[node]nodeFunc{
		nB13: doB13, nB12: doB12, nB11: doB11, nB10: doB10, nB9: doB9,
		nB8: doB8, nB7: doB7, nB6: doB6, nB5: doB5, nB4: doB4, nB3: doB3,
		nC3: doC3, nC4: doC4, nD4: doD4, nD5: doD5, nE5: doE5, nE6: doE6,
		nF6: doF6, nF7: doF7,
		nG7: doG7, nG8: doG8, nG9: doG9, nG11: doG11,
		nH7: doH7, nH10: doH10, nH11: doH11, nH12: doH12,
		nI4: doI4, nI7: doI7, nI12: doI12, nI13: doI13, nJ18: doJ18,
		nK5: doK5, nK7: doK7, nK13: doK13,
		nL5: doL5, nL7: doL7, nL13: doL13, nL14: doL14, nL15: doL15, nL17: doL17,
		nM5: doM5, nM7: doM7, nM16: doM16, nM20: doM20,
		nN5: doN5, nN11: doN11, nN16: doN16,
		nO14: doO14, nO16: doO16, nO18: doO18, nO20: doO20,
		nP3: doP3, nP11: doP11,
	}
}

func terminate(ctx *Context, status int) node {
	ctx.Status = status
	return nDone
}
