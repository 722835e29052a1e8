package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristCell      [5][Size * Size]uint64 // [Cell+2][Square], index 2 (Empty) stays zero
	zobristOppToMove uint64                 // XOR when Opp to move
	zobristKingsBack uint64                 // XOR when kings step backward
	zobristMove      [Size * Size][Size * Size]uint64
	zobristDepth     [64]uint64
	zobristMaximize  uint64
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for _, c := range []Cell{OppKing, OppMan, MyMan, MyKing} {
		for sq := 0; sq < Size*Size; sq++ {
			zobristCell[c+2][sq] = rng.next()
		}
	}

	zobristOppToMove = rng.next()
	zobristKingsBack = rng.next()

	for from := range zobristMove {
		for to := range zobristMove[from] {
			zobristMove[from][to] = rng.next()
		}
	}

	for d := range zobristDepth {
		zobristDepth[d] = rng.next()
	}

	zobristMaximize = rng.next()
}

func zobristCellKey(c Cell, sq Coord) uint64 {
	return zobristCell[c+2][sq.Index()]
}

// ComputeHash computes the Zobrist hash from scratch. Besides the grid and the
// side to move it covers the rule switches that change move generation.
func (b *Board) ComputeHash() uint64 {
	var h uint64
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if cell := b.grid[row][col]; cell != Empty {
				h ^= zobristCellKey(cell, Coord{row, col})
			}
		}
	}
	if b.turn == Opp {
		h ^= zobristOppToMove
	}
	if b.rules.KingsMoveBackward {
		h ^= zobristKingsBack
	}
	return h
}

// MoveKey mixes a move, a remaining depth and a maximizing flag into a
// position hash. The result identifies "the score of playing m here, searched
// to depth with the given flag".
func MoveKey(posHash uint64, m Move, depth int, maximizing bool) uint64 {
	k := posHash ^ zobristMove[m.From.Index()][m.To.Index()] ^ zobristDepth[depth&63]
	if maximizing {
		k ^= zobristMaximize
	}
	return k
}
