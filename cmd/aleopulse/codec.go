package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aleopulse/internal/codec"
	"aleopulse/internal/config"
)

// codecOp converts one input into its JSON-able result.
type codecOp func(cfg config.CodecConfig, input string) (interface{}, error)

type codecResult struct {
	Input  string      `json:"input"`
	Output interface{} `json:"output"`
	Error  string      `json:"error,omitempty"`
}

type literalView struct {
	Type  codec.Type `json:"type"`
	Value string     `json:"value"`
	Short string     `json:"short,omitempty"`
}

func newEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text and values as Aleo literals",
	}
	cmd.AddCommand(
		newCodecCommand("field [text...]", "Encode text into one field literal", encodeField),
		newCodecCommand("seq [text...]", "Encode text into a fixed number of field literals", encodeSequence),
		newCodecCommand("literal [value...]", "Encode a value as a typed literal (--type)", encodeLiteral),
		newCodecCommand("token-name [text...]", "Encode a token name or symbol as a u128 literal", encodeTokenName),
	)
	return cmd
}

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode Aleo literals",
	}
	cmd.AddCommand(
		newCodecCommand("field [literal...]", "Decode a field literal into text", decodeField),
		newCodecCommand("seq [literals...]", "Decode comma-separated field literals into text", decodeSequence),
		newCodecCommand("literal [literal...]", "Decode a typed literal (--type)", decodeLiteral),
		newCodecCommand("token-name [literal...]", "Decode a u128 token name literal", decodeTokenName),
		newCodecCommand("struct [literal...]", "Split a struct literal into members", decodeStruct),
	)
	return cmd
}

// newCodecCommand builds a leaf command that applies op to each positional
// argument, or to each non-empty line of --in.
func newCodecCommand(use, short string, op codecOp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodec(cmd, args, op)
		},
	}
	addNetworkFlags(cmd.Flags())
	cmd.Flags().String("type", "field", "literal type (u8, u16, u32, u64, u128, bool, field, address)")
	cmd.Flags().Int("visible", 6, "characters kept on each side of a shortened address")
	cmd.Flags().String("in", "", "input file, one value per line")
	cmd.Flags().String("out", "-", "output JSONL path, - for stdout")
	return cmd
}

func runCodec(cmd *cobra.Command, args []string, op codecOp) error {
	cfg, err := config.LoadCodec(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputs, err := readInputs(args, cfg.In)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input given")
	}

	out, err := newJSONLWriter(cfg.Out, false)
	if err != nil {
		return err
	}
	defer out.Close()

	var failed int
	for _, input := range inputs {
		result := codecResult{Input: input}
		output, err := op(cfg, input)
		if err != nil {
			failed++
			result.Error = err.Error()
			logger.Debug("codec input failed", zap.String("command", cmd.Name()), zap.String("input", input), zap.Error(err))
		} else {
			result.Output = output
		}
		if err := out.Write(result); err != nil {
			return err
		}
	}

	logger.Debug("codec complete",
		zap.String("command", cmd.CommandPath()),
		zap.String("network", cfg.Network.Name),
		zap.Int("total", len(inputs)),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func readInputs(args []string, inPath string) ([]string, error) {
	if inPath == "" {
		return args, nil
	}

	file, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	return scanInputs(file, append([]string(nil), args...))
}

// scanInputs appends one input per non-empty line of r. Only the line
// ending is removed so surrounding spaces reach the encoder.
func scanInputs(r io.Reader, inputs []string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return inputs, nil
}

func encodeField(cfg config.CodecConfig, input string) (interface{}, error) {
	return cfg.Network.Codec().EncodeText(input)
}

func encodeSequence(cfg config.CodecConfig, input string) (interface{}, error) {
	return cfg.Network.Codec().EncodeTextSequence(input, cfg.Network.FieldSlots)
}

func encodeLiteral(cfg config.CodecConfig, input string) (interface{}, error) {
	t, err := codec.ParseType(cfg.LiteralType)
	if err != nil {
		return nil, err
	}

	var value interface{} = input
	if t == codec.TypeBool {
		b, err := strconv.ParseBool(input)
		if err != nil {
			return nil, fmt.Errorf("parse bool: %w", err)
		}
		value = b
	}
	return codec.EncodeTypedLiteral(value, t)
}

func encodeTokenName(_ config.CodecConfig, input string) (interface{}, error) {
	return codec.EncodeTokenName(input)
}

func decodeField(_ config.CodecConfig, input string) (interface{}, error) {
	return codec.DecodeFieldToText(input)
}

func decodeSequence(_ config.CodecConfig, input string) (interface{}, error) {
	literals := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return codec.DecodeFieldSequenceToText(literals)
}

func decodeLiteral(cfg config.CodecConfig, input string) (interface{}, error) {
	t, err := codec.ParseType(cfg.LiteralType)
	if err != nil {
		return nil, err
	}
	value, err := codec.DecodeTypedLiteral(input, t)
	if err != nil {
		return nil, err
	}

	view := literalView{Type: t}
	switch t {
	case codec.TypeBool:
		view.Value = strconv.FormatBool(value.Bool)
	case codec.TypeAddress:
		view.Value = value.Address
		view.Short = codec.ShortenAddress(value.Address, cfg.Visible)
	default:
		view.Value = value.Int.Dec()
	}
	return view, nil
}

func decodeTokenName(_ config.CodecConfig, input string) (interface{}, error) {
	return codec.DecodeTokenName(input)
}

func decodeStruct(_ config.CodecConfig, input string) (interface{}, error) {
	return codec.ParseStruct(input)
}
