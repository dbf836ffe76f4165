// Package demo registers the sample tools served by the mcplite binary.
package demo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/skosovsky/mcplite"
)

// ErrDivisionByZero is returned by the divide tool.
var ErrDivisionByZero = errors.New("division by zero")

// AddArgs are the arguments of the add tool.
type AddArgs struct {
	X int `json:"x" description:"First number"`
	Y int `json:"y" description:"Second number"`
}

func add(_ context.Context, a AddArgs) (int, error) {
	return a.X + a.Y, nil
}

// DivideArgs are the arguments of the divide tool.
type DivideArgs struct {
	Dividend float64 `json:"dividend"`
	Divisor  float64 `json:"divisor"`
}

func divide(_ context.Context, a DivideArgs) (float64, error) {
	if a.Divisor == 0 {
		return 0, ErrDivisionByZero
	}
	return a.Dividend / a.Divisor, nil
}

// BMI is the result of the calculate_bmi tool.
type BMI struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMIArgs are the arguments of the calculate_bmi tool.
type BMIArgs struct {
	WeightKg float64 `json:"weight_kg"`
	HeightM  float64 `json:"height_m"`
}

func calculateBMI(_ context.Context, a BMIArgs) (BMI, error) {
	if a.HeightM <= 0 {
		return BMI{}, fmt.Errorf("height must be positive, got %v", a.HeightM)
	}
	v := math.Round(a.WeightKg/(a.HeightM*a.HeightM)*10) / 10
	var category string
	switch {
	case v < 18.5:
		category = "Underweight"
	case v < 25:
		category = "Normal weight"
	case v < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return BMI{BMI: v, Category: category}, nil
}

var greetings = map[string]string{
	"en": "Hello, %s!",
	"es": "¡Hola, %s!",
	"fr": "Bonjour, %s!",
}

func greet(_ context.Context, args map[string]any) (any, error) {
	name, ok := args["name"].(string)
	if !ok {
		return nil, errors.New("name must be a string")
	}
	lang, _ := args["language"].(string)
	format, ok := greetings[lang]
	if !ok {
		format = greetings["en"]
	}
	return fmt.Sprintf(format, name), nil
}

func echo(_ context.Context, args map[string]any) (any, error) {
	return args["message"], nil
}

// Register adds the demo tools to reg in a fixed order.
func Register(reg *mcplite.Registry) error {
	if err := mcplite.RegisterFunc(reg, "", add, mcplite.Metadata{
		Title:       "Add Numbers",
		Description: "Add two numbers together",
	}); err != nil {
		return err
	}
	if err := reg.Register("", greet, mcplite.Metadata{
		Title:       "Greet User",
		Description: "Generate a personalized greeting",
		Doc: `Greet a user in different languages.

name: Name of the person to greet
language: Language code (en, es, fr)`,
		Params: []mcplite.Param{
			mcplite.Arg[string]("name"),
			mcplite.Arg[string]("language", mcplite.Optional()),
		},
	}); err != nil {
		return err
	}
	if err := reg.Register("", echo, mcplite.Metadata{
		Description: "Echo the message back",
		Params:      []mcplite.Param{mcplite.Untyped("message", mcplite.Describe("The message to echo back"))},
	}); err != nil {
		return err
	}
	if err := mcplite.RegisterFunc(reg, "", divide, mcplite.Metadata{
		Title:       "Divide",
		Description: "Divide dividend by divisor",
	}); err != nil {
		return err
	}
	return mcplite.RegisterFunc(reg, "calculate_bmi", calculateBMI, mcplite.Metadata{
		Title:       "Calculate BMI",
		Description: "Calculate Body Mass Index",
	})
}
