package access

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

type Audit struct {
	CreatedBy string
}

type person struct {
	*Audit
	Name   string
	Age    int
	Status status
	secret string
}

func TestResolve(t *testing.T) {
	owner := reflect.TypeFor[person]()

	tests := []struct {
		name    string
		owner   reflect.Type
		field   string
		wantErr error
	}{
		{name: "plain field", owner: owner, field: "Name"},
		{name: "pointer owner", owner: reflect.PointerTo(owner), field: "Age"},
		{name: "promoted field", owner: owner, field: "CreatedBy"},
		{name: "missing field", owner: owner, field: "Email", wantErr: ErrFieldNotFound},
		{name: "unexported field", owner: owner, field: "secret", wantErr: ErrUnexported},
		{name: "not a struct", owner: reflect.TypeFor[int](), field: "Name", wantErr: ErrNotStruct},
		{name: "nil type", owner: nil, field: "Name", wantErr: ErrNotStruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Resolve(tt.owner, tt.field)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				var accessErr *Error
				require.ErrorAs(t, err, &accessErr)
				assert.Equal(t, OpResolve, accessErr.Op)
				assert.Equal(t, tt.field, accessErr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner, f.Owner)
			assert.Equal(t, tt.field, f.Name)
		})
	}
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"CreatedBy", "Name", "Age", "Status"}, Names(reflect.TypeFor[person]()))
	assert.Nil(t, Fields(reflect.TypeFor[string]()))
}

func TestField_String(t *testing.T) {
	f, err := Resolve(reflect.TypeFor[person](), "Name")
	require.NoError(t, err)

	assert.Equal(t, "person.Name", f.String())
	assert.Equal(t, "access.person.Name (string)", f.Detailed())
	assert.Equal(t, "<none>", Field{}.String())
	assert.True(t, Field{}.IsZero())
}

func TestField_Equal(t *testing.T) {
	a, _ := Resolve(reflect.TypeFor[person](), "Name")
	b, _ := Resolve(reflect.PointerTo(reflect.TypeFor[person]()), "Name")
	c, _ := Resolve(reflect.TypeFor[person](), "Age")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestField_Read(t *testing.T) {
	name, _ := Resolve(reflect.TypeFor[person](), "Name")
	createdBy, _ := Resolve(reflect.TypeFor[person](), "CreatedBy")

	p := person{Name: "Ada", Audit: &Audit{CreatedBy: "root"}}

	t.Run("struct value", func(t *testing.T) {
		v, err := name.Read(reflect.ValueOf(p))
		require.NoError(t, err)
		assert.Equal(t, "Ada", v.String())
	})

	t.Run("pointer", func(t *testing.T) {
		v, err := createdBy.Read(reflect.ValueOf(&p))
		require.NoError(t, err)
		assert.Equal(t, "root", v.String())
	})

	t.Run("nil pointer", func(t *testing.T) {
		_, err := name.Read(reflect.ValueOf((*person)(nil)))
		require.ErrorIs(t, err, ErrNilValue)
	})

	t.Run("nil embedded pointer", func(t *testing.T) {
		_, err := createdBy.Read(reflect.ValueOf(person{}))
		require.ErrorIs(t, err, ErrNilValue)
	})

	t.Run("wrong owner", func(t *testing.T) {
		_, err := name.Read(reflect.ValueOf(Audit{}))
		require.ErrorIs(t, err, ErrIncompatible)

		var accessErr *Error
		require.True(t, errors.As(err, &accessErr))
		assert.Equal(t, OpRead, accessErr.Op)
	})
}

func TestField_Write(t *testing.T) {
	owner := reflect.TypeFor[person]()
	name, _ := Resolve(owner, "Name")
	stat, _ := Resolve(owner, "Status")
	createdBy, _ := Resolve(owner, "CreatedBy")

	t.Run("assignable", func(t *testing.T) {
		var p person
		require.NoError(t, name.Write(reflect.ValueOf(&p), reflect.ValueOf("Ada")))
		assert.Equal(t, "Ada", p.Name)
	})

	t.Run("converts same kind", func(t *testing.T) {
		var p person
		require.NoError(t, stat.Write(reflect.ValueOf(&p), reflect.ValueOf("active")))
		assert.Equal(t, status("active"), p.Status)
	})

	t.Run("invalid value writes zero", func(t *testing.T) {
		p := person{Name: "Ada"}
		require.NoError(t, name.Write(reflect.ValueOf(&p), reflect.Value{}))
		assert.Empty(t, p.Name)
	})

	t.Run("allocates embedded pointer", func(t *testing.T) {
		var p person
		require.NoError(t, createdBy.Write(reflect.ValueOf(&p), reflect.ValueOf("root")))
		require.NotNil(t, p.Audit)
		assert.Equal(t, "root", p.CreatedBy)
	})

	t.Run("incompatible", func(t *testing.T) {
		var p person
		err := name.Write(reflect.ValueOf(&p), reflect.ValueOf(42))
		require.ErrorIs(t, err, ErrIncompatible)
		assert.Contains(t, err.Error(), "write person.Name")
	})

	t.Run("not addressable", func(t *testing.T) {
		err := name.Write(reflect.ValueOf(person{}), reflect.ValueOf("Ada"))
		require.ErrorIs(t, err, ErrNotAddressable)
	})
}
