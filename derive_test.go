package safenum

import (
	"embed"
	"errors"
	"path"
	"slices"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
)

//go:embed testdata/derivations
var derivationCases embed.FS

type derivationCase struct {
	Op        policy.Op           `yaml:"op"`
	Promotion string              `yaml:"promotion"`
	Exception *policy.Exception   `yaml:"exception"`
	Left      caseType            `yaml:"left"`
	Right     caseType            `yaml:"right"`
	Result    *caseType           `yaml:"result"`
	Reasons   []checked.ErrorKind `yaml:"reasons"`
	Trapped   bool                `yaml:"trapped"`
}

type caseType struct {
	Kind repr.Kind `yaml:"kind"`
	Min  string    `yaml:"min"`
	Max  string    `yaml:"max"`
}

func (c caseType) declare(t *testing.T, p policy.Promotion, e *policy.Exception) *Type {
	t.Helper()

	lo, err := c.Kind.Parse(c.Min)
	if err != nil {
		t.Fatalf("parse min: %s", err)
	}
	hi, err := c.Kind.Parse(c.Max)
	if err != nil {
		t.Fatalf("parse max: %s", err)
	}

	res, err := DeclareKind(c.Kind, lo, hi, p, e)
	if err != nil {
		t.Fatalf("declare %s: %s", c.Kind, err)
	}

	return res
}

func TestDerivations(t *testing.T) {
	const dir = "testdata/derivations"

	files, err := derivationCases.ReadDir(dir)
	if err != nil {
		t.Fatalf("list derivation cases: %s", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), "case_") {
			continue
		}

		t.Run(strings.TrimSuffix(file.Name(), ".yaml"), func(t *testing.T) {
			data, err := derivationCases.ReadFile(path.Join(dir, file.Name()))
			if err != nil {
				t.Fatalf("read case %s: %s", file.Name(), err)
			}

			var c derivationCase
			if err := yaml.Unmarshal(data, &c); err != nil {
				t.Fatalf("decode case %s: %s", file.Name(), err)
			}

			p, ok := policy.Promotions[c.Promotion]
			if !ok {
				t.Fatalf("unknown promotion %q", c.Promotion)
			}
			left := c.Left.declare(t, p, c.Exception)
			right := c.Right.declare(t, p, c.Exception)

			b, err := Bind(c.Op, left, right)
			if c.Trapped {
				if !errors.Is(err, policy.ErrTrapped) {
					t.Fatalf("trap expected, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("bind: %s", err)
			}

			want := c.Result.declare(t, p, c.Exception)
			if b.Result() != want {
				t.Errorf("result type %s expected, got %s", want, b.Result())
			}

			gotReasons := b.Reasons()
			slices.Sort(gotReasons)
			wantReasons := slices.Clone(c.Reasons)
			slices.Sort(wantReasons)
			if !slices.Equal(wantReasons, gotReasons) {
				deepequal.SideBySide(t, "reasons", wantReasons, gotReasons)
			}
			if b.ExceptionPossible() != (len(wantReasons) > 0) {
				t.Errorf("exception possible mismatch")
			}

			again, err := Bind(c.Op, left, right)
			if err != nil || again != b {
				t.Errorf("derivation must be memoized")
			}
		})
	}
}
