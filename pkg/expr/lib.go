package expr

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Strings(),
		ext.Lists(),

		// `pathBase` returns the last element of the path.
		// Example: pathBase(path) in ["Chart.yaml", "values.yaml"].
		cel.Function("pathBase",
			cel.Overload("path_base", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("pathBase", filepath.Base)),
			),
		),

		// `pathDir` returns all but the last element of the path.
		// Example: pathDir(path).endsWith("/packages").
		cel.Function("pathDir",
			cel.Overload("path_dir", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("pathDir", filepath.Dir)),
			),
		),

		// `pathExt` returns the file extension of the path.
		// Example: pathExt(path) in [".rton", ".json"].
		cel.Function("pathExt",
			cel.Overload("path_ext", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(stringFunc("pathExt", filepath.Ext)),
			),
		),

		// `isDir` reports whether the path is an existing directory.
		cel.Function("isDir",
			cel.Overload("is_dir", []*cel.Type{cel.StringType}, cel.BoolType,
				cel.UnaryBinding(statFunc("isDir", os.FileInfo.IsDir)),
			),
		),

		// `isFile` reports whether the path is an existing regular file.
		cel.Function("isFile",
			cel.Overload("is_file", []*cel.Type{cel.StringType}, cel.BoolType,
				cel.UnaryBinding(statFunc("isFile", func(fi os.FileInfo) bool {
					return fi.Mode().IsRegular()
				})),
			),
		),

		// `yamlPath` reads a YAML (or JSON) file and extracts a value using a YAML path.
		// Returns null if the file can't be read or the path doesn't exist.
		// Example: yamlPath(path, "$.version") == 1.
		cel.Function("yamlPath",
			cel.Overload("yaml_path", []*cel.Type{cel.StringType, cel.StringType}, cel.DynType,
				cel.BinaryBinding(func(filePath, yamlPathExpr ref.Val) ref.Val {
					filePathStr, ok := filePath.(types.String).Value().(string)
					if !ok {
						return types.NewErr("yamlPath: invalid file path")
					}

					yamlPathStr, ok := yamlPathExpr.(types.String).Value().(string)
					if !ok {
						return types.NewErr("yamlPath: invalid yaml path")
					}

					logger := slog.With(
						slog.String("file", filePathStr),
						slog.String("yamlPath", yamlPathStr),
					)

					//nolint:gosec // G304: Potential file inclusion via variable.
					content, err := os.ReadFile(filePathStr)
					if err != nil {
						logger.Debug("failed to read YAML file, returning null",
							slog.Any("error", err),
						)

						return types.NullValue
					}

					path, err := yaml.PathString(yamlPathStr)
					if err != nil {
						logger.Debug("invalid YAML path, returning null",
							slog.Any("error", err),
						)

						return types.NullValue
					}

					var value any

					err = path.Read(bytes.NewReader(content), &value)
					if err != nil {
						logger.Debug("failed to extract value from YAML, returning null",
							slog.Any("error", err),
						)

						return types.NullValue
					}

					return ConvertToCELValue(value)
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func stringFunc(name string, fn func(string) string) func(ref.Val) ref.Val {
	return func(path ref.Val) ref.Val {
		pathValue, ok := path.(types.String).Value().(string)
		if !ok {
			return types.NewErr("%s: invalid string value", name)
		}

		return types.String(fn(pathValue))
	}
}

func statFunc(name string, fn func(os.FileInfo) bool) func(ref.Val) ref.Val {
	return func(path ref.Val) ref.Val {
		pathValue, ok := path.(types.String).Value().(string)
		if !ok {
			return types.NewErr("%s: invalid string value", name)
		}

		fi, err := os.Stat(pathValue)
		if err != nil {
			return types.False
		}

		return types.Bool(fn(fi))
	}
}

// ConvertToCELValue converts a decoded YAML value to a CEL value.
// Unsupported types become null.
//
//nolint:ireturn // Following CEL's function signature.
func ConvertToCELValue(value any) ref.Val {
	switch v := value.(type) {
	case nil:
		return types.NullValue

	case bool:
		return types.Bool(v)

	case int:
		return types.Int(v)

	case int64:
		return types.Int(v)

	case uint64:
		if v > math.MaxInt64 {
			return types.Double(float64(v))
		}

		return types.Int(int64(v))

	case float64:
		return types.Double(v)

	case string:
		return types.String(v)

	case []any:
		celValues := make([]ref.Val, len(v))
		for i, item := range v {
			celValues[i] = ConvertToCELValue(item)
		}

		return types.NewDynamicList(types.DefaultTypeAdapter, celValues)

	case map[any]any:
		celMap := make(map[ref.Val]ref.Val, len(v))
		for key, val := range v {
			celMap[ConvertToCELValue(key)] = ConvertToCELValue(val)
		}

		return types.NewDynamicMap(types.DefaultTypeAdapter, celMap)

	case map[string]any:
		celMap := make(map[ref.Val]ref.Val, len(v))
		for key, val := range v {
			celMap[types.String(key)] = ConvertToCELValue(val)
		}

		return types.NewDynamicMap(types.DefaultTypeAdapter, celMap)

	default:
		return types.NullValue
	}
}
