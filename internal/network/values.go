package network

import (
	"log/slog"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/portgraph/internal/flow"
)

// functions are callable from every expression in a network file.
var functions = map[string]function.Function{
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
	"abs":    stdlib.AbsoluteFunc,
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"format": stdlib.FormatFunc,
	"length": stdlib.LengthFunc,
	"env":    envFunc,
}

// envFunc reads an environment variable, yielding "" when it is unset.
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "name", Type: cty.String}},
	Type:   function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

var nullValue = cty.NullVal(cty.DynamicPseudoType)

// evalStatic evaluates an expression without variables.
func evalStatic(expr hcl.Expression) (cty.Value, hcl.Diagnostics) {
	return expr.Value(&hcl.EvalContext{Functions: functions})
}

// transformFunc turns a transform expression into a stage. Evaluation
// errors are logged and produce a null value, since stages cannot fail.
func transformFunc(logger *slog.Logger, el *Element) flow.Func[cty.Value] {
	expr := el.Expr
	return func(v cty.Value) cty.Value {
		out, diags := expr.Value(&hcl.EvalContext{
			Variables: map[string]cty.Value{"value": v},
			Functions: functions,
		})
		if diags.HasErrors() {
			logger.Warn("Transform evaluation failed, passing null.", "transform", el.Name, "error", diags.Error())
			return nullValue
		}
		return out
	}
}

// FormatValue renders v as JSON, or "null" for null values.
func FormatValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsWhollyKnown() {
		return "(unknown)"
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(b)
}
