package vitals

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVitals_ApplyDamage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		amounts      []int32
		wantHP       int32
		wantDefeated bool
	}{
		{"single hit", []int32{30}, 70, false},
		{"negative is no-op", []int32{-40}, 100, false},
		{"exact zero respawns", []int32{60, 40}, 100, true},
		{"overkill respawns", []int32{250}, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := New(DefaultMaxHP)
			var res DamageResult
			for _, a := range tt.amounts {
				res = v.ApplyDamage(a)
			}
			assert.Equal(t, tt.wantHP, res.HP)
			assert.Equal(t, tt.wantHP, v.CurrentHP())
			assert.Equal(t, tt.wantDefeated, res.Defeated)
		})
	}
}

func TestVitals_DefeatSignal(t *testing.T) {
	t.Parallel()

	v := New(100)
	var defeats int
	v.SetDefeatFunc(func(damage int32) {
		defeats++
		assert.Equal(t, int32(45), damage)
		assert.Equal(t, int32(100), v.CurrentHP(), "HP already restored when signalled")
	})

	var changes [][2]int32
	v.SetChangeFunc(func(cur, maxHP int32) { changes = append(changes, [2]int32{cur, maxHP}) })

	v.ApplyDamage(70)
	res := v.ApplyDamage(45)

	require.True(t, res.Defeated)
	assert.Equal(t, int32(30), res.Damage)
	assert.Equal(t, 1, defeats)
	assert.Equal(t, [][2]int32{{30, 100}, {100, 100}}, changes)
}

func TestVitals_Heal(t *testing.T) {
	t.Parallel()

	v := New(100)
	v.ApplyDamage(80)
	assert.Equal(t, int32(70), v.Heal(50))
	assert.Equal(t, int32(100), v.Heal(50))
	assert.Equal(t, int32(100), v.Heal(-10))
}

func TestVitals_ExtremeAmounts(t *testing.T) {
	t.Parallel()

	v := New(100)
	v.ApplyDamage(50)
	assert.Equal(t, int32(100), v.Heal(math.MaxInt32))

	hp, maxHP := v.Snapshot()
	assert.Equal(t, int32(100), hp)
	assert.Equal(t, int32(100), maxHP)

	assert.Equal(t, int32(100), v.ApplyDamage(math.MinInt32).HP)

	res := v.ApplyDamage(math.MaxInt32)
	assert.True(t, res.Defeated)
	assert.Equal(t, int32(100), res.Damage)
	assert.Equal(t, int32(100), res.HP)
}

func TestVitals_Restore(t *testing.T) {
	t.Parallel()

	v := New(100)
	v.Restore(40)
	assert.Equal(t, int32(40), v.CurrentHP())
	v.Restore(500)
	assert.Equal(t, int32(100), v.CurrentHP())
	v.Restore(0)
	assert.Equal(t, int32(100), v.CurrentHP())
}

// HP never leaves [0, maxHP] under random damage/heal sequences.
func TestVitals_ClampProperty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))
	v := New(100)
	for range 10_000 {
		amount := rng.Int32N(300) - 100
		if rng.IntN(2) == 0 {
			v.ApplyDamage(amount)
		} else {
			v.Heal(amount)
		}
		hp, maxHP := v.Snapshot()
		require.GreaterOrEqual(t, hp, int32(0))
		require.LessOrEqual(t, hp, maxHP)
	}
}

func TestVitals_Concurrent(t *testing.T) {
	t.Parallel()

	v := New(100)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				v.ApplyDamage(7)
			} else {
				v.Heal(5)
			}
		}()
	}
	wg.Wait()

	hp := v.CurrentHP()
	assert.GreaterOrEqual(t, hp, int32(1))
	assert.LessOrEqual(t, hp, int32(100))
}
