package catalog

// DefaultModules returns the built-in modules used when no catalog file is
// configured.
func DefaultModules() []Module {
	return []Module{
		{
			ID:          "termokimia",
			Title:       "Termokimia Dasar",
			Level:       LevelSMA,
			Description: "Konsep sistem, lingkungan, entalpi (ΔH), dan hukum Hess.",
			Content: `# Ringkasan
- **Sistem**: bagian yang dikaji; **lingkungan**: di luar sistem.
- **Proses eksoterm**: melepas kalor (ΔH < 0); **endoterm**: menyerap kalor (ΔH > 0).
- **Hukum Hess**: ΔH total reaksi = jumlah ΔH tahapannya.

## Contoh Simbol
- ΔH: perubahan entalpi
- q: kalor
- Σ: penjumlahan
- n: mol

## Contoh Soal Singkat
Reaksi A→B memiliki ΔH1, B→C memiliki ΔH2. Maka ΔH A→C = ΣΔH = ΔH1 + ΔH2.
`,
			VideoURL: "https://www.youtube.com/embed/0H79C4QeL8Q",
			Flashcards: []Flashcard{
				{Front: "Eksoterm", Back: "Reaksi yang melepas kalor (ΔH negatif)."},
				{Front: "Endoterm", Back: "Reaksi yang menyerap kalor (ΔH positif)."},
				{Front: "Hukum Hess", Back: "ΔH total = jumlah ΔH tahapan reaksi."},
				{Front: "Σ (Sigma)", Back: "Simbol penjumlahan."},
			},
			Quiz: []QuizItem{
				{
					Question: "Manakah pernyataan yang benar tentang reaksi eksoterm?",
					Choices: []string{
						"Suhu sistem turun dan ΔH > 0",
						"Suhu lingkungan naik dan ΔH < 0",
						"Energi diserap dari lingkungan, ΔH > 0",
						"Tidak ada perubahan kalor",
					},
					CorrectIndex: 1,
					Explanation:  "Eksoterm melepas kalor ke lingkungan sehingga lingkungan lebih hangat dan ΔH bernilai negatif.",
				},
				{
					Question: "Menurut Hukum Hess, ΔH reaksi keseluruhan adalah…",
					Choices: []string{
						"Rata-rata ΔH tiap tahap",
						"Perkalian ΔH tiap tahap",
						"Jumlah ΔH tiap tahap",
						"Selisih ΔH tahap terbesar dan terkecil",
					},
					CorrectIndex: 2,
					Explanation:  "Hukum Hess menyatakan ΔH total adalah jumlah aljabar ΔH tahapan.",
				},
			},
		},
		{
			ID:          "statistika",
			Title:       "Statistika Ringkas",
			Level:       LevelSMP,
			Description: "Rata-rata, median, modus, dan sebaran sederhana.",
			Content: `# Ringkasan
- **Rata-rata (mean)**: jumlah data ÷ banyaknya data.
- **Median**: nilai tengah data terurut.
- **Modus**: nilai yang paling sering muncul.
`,
			VideoURL: "https://www.youtube.com/embed/O2w1fU2j4HY",
			Flashcards: []Flashcard{
				{Front: "Mean", Back: "Jumlah seluruh data dibagi banyak data."},
				{Front: "Median", Back: "Nilai tengah dari data terurut."},
				{Front: "Modus", Back: "Nilai yang paling sering muncul."},
			},
			Quiz: []QuizItem{
				{
					Question:     "Data: 2, 3, 3, 5. Modusnya adalah…",
					Choices:      []string{"2", "3", "4", "5"},
					CorrectIndex: 1,
					Explanation:  "Angka 3 muncul dua kali, paling sering.",
				},
			},
		},
	}
}
