package router

// Prototype is a set of example phrases representing one intent in embedding space.
type Prototype struct {
	Intent  Intent
	Phrases []string
}

// DefaultPrototypes is the curated phrase set used to build intent centroids.
// The slice order also fixes the scan order when picking the best centroid.
var DefaultPrototypes = []Prototype{
	{IntentGreeting, []string{
		"halo z ai",
		"hai bantu aku",
		"hi ada yang bisa dibantu",
	}},
	{IntentCreateTask, []string{
		"buat task belajar basis data deadline besok",
		"tambah tugas harian untuk dikerjakan",
		"catat todo kuliah hari ini",
	}},
	{IntentCreateAssignment, []string{
		"buat assignment makalah ai deadline minggu ini",
		"tambah tugas kuliah baru",
		"catat assignment kampus",
	}},
	{IntentSetReminder, []string{
		"ingatkan aku jam 7 malam",
		"set reminder untuk belajar",
		"jangan lupa notifikasi deadline",
	}},
	{IntentDailyBrief, []string{
		"ringkasan hari ini",
		"brief tugas harian",
		"rekap fokus hari ini",
	}},
	{IntentCheckDailyTarget, []string{
		"cek target harian pasangan",
		"goal hari ini apa",
		"target kita hari ini",
	}},
	{IntentCheckinProgress, []string{
		"update progres tugas",
		"check in progres belajar",
		"laporan progress hari ini",
	}},
	{IntentRecommendTask, []string{
		"rekomendasi tugas mana dulu",
		"prioritas tugas kuliah sekarang",
		"aku harus kerjain apa dulu",
	}},
	{IntentStudySchedule, []string{
		"buat jadwal belajar dari waktu kosong",
		"susun study plan besok pagi",
		"atur sesi belajar",
	}},
	{IntentEvaluation, []string{
		"evaluasi hari ini",
		"review progres hari ini",
		"refleksi belajar",
	}},
	{IntentToxicMotivation, []string{
		"kasih motivasi tegas",
		"mode no excuse sekarang",
		"gaspol jangan kasih kendor",
	}},
	{IntentAffirmation, []string{
		"oke lanjut",
		"siap gas",
		"deal kerjain sekarang",
	}},
	{IntentReminderAck, []string{
		"reminder oke aktifkan",
		"notifikasi sudah jalan",
		"alarmnya siap",
	}},
}
