package reply

import "github.com/hrygo/zai/plugin/ai/router"

// templates holds the reply variants per intent. Placeholders use {name}
// and are filled from the selection vars.
var templates = map[router.Intent][]string{
	router.IntentGreeting: {
		"Hai, gue di sini buat bantu kalian tetap on track. Mulai dari target harian dulu, ya?",
		"Halo! Gimana ritme hari ini? Mau cek target atau atur prioritas dulu?",
		"Hi. Kita jaga fokus bareng-bareng. Satu target utama dulu, baru yang lain nyusul.",
		"Halo, partner produktif. Hari ini kita bikin progres kecil tapi nyata.",
		"Hai! Kalau bingung mulai dari mana, kita tentuin 1 tugas paling penting dulu.",
		"Ayo mulai rapi: satu tujuan jelas, satu langkah sekarang.",
		"Selamat datang. Kita bikin hari ini lebih produktif dari kemarin.",
		"Gue siap bantu {partner_label} sinkron. Mau mulai dari target atau progres?",
	},
	router.IntentCheckDailyTarget: {
		"Target hari ini simpel: 1 tugas prioritas selesai, 1 sesi fokus tanpa distraksi, lalu check-in malam.",
		"Ritme aman hari ini: kerjakan deadline terdekat, lanjut 30–45 menit belajar fokus, update progres berdua.",
		"Fokus hari ini: satu hasil nyata dulu. Pilih tugas paling berdampak, tuntaskan, baru lanjut.",
		"Target bareng: progress > perfeksionis. Kerja konsisten, lalu kirim update singkat ke {partner_label}.",
		"Hari ini kita kejar yang penting dulu: 1 tugas selesai, 1 sesi review, dan check-in sebelum istirahat.",
		"Prioritas hari ini: selesaikan yang mendesak, lanjut yang berdampak, tutup dengan refleksi singkat.",
		"Formula aman: pilih 1 target utama, pecah jadi langkah kecil, eksekusi sekarang.",
		"Target {partner_label}: progres nyata, bukan sekadar rencana.",
	},
	router.IntentReminderAck: {
		"Oke, pengingat sudah dicatat. Lanjut satu langkah kecil sekarang biar momentum kebentuk.",
		"Siap, reminder aktif. Kerjain dulu yang paling penting, nanti kita cek lagi.",
		"Noted. Pengingat jalan, fokus 25 menit dulu, habis itu update ya.",
		"Sudah gue tandai. Jalan pelan tapi pasti, yang penting konsisten.",
		"Sip, diingatkan. Mulai dari bagian paling gampang biar cepat bergerak.",
		"Reminder siap. Jangan tunggu mood, mulai sekarang.",
		"Pengingat aktif. Eksekusi dulu, evaluasi belakangan.",
		"Udah dicatat. Satu langkah sekarang lebih berharga dari rencana panjang.",
	},
	router.IntentCheckinProgress: {
		"Update cepat: apa yang sudah selesai, lagi dikerjain apa, dan ada hambatan di mana?",
		"Coba ringkas progres: selesai berapa persen, next step apa, butuh bantuan apa?",
		"Biar sinkron: kirim status singkat tugas + level fokus kamu sekarang.",
		"Check-in singkat aja: 1 kemenangan kecil hari ini dan 1 langkah berikutnya.",
		"Gue butuh snapshot progres: done, doing, dan blocker.",
		"Progres report: apa yang maju hari ini dan apa yang menahan?",
		"Update jujur: kerja nyata atau masih persiapan?",
		"Sinkronisasi cepat: status tugas, estimasi selesai, dan kebutuhan dukungan.",
	},
	router.IntentRecommendTask: {
		"Prioritas sekarang: selesaikan yang bisa tuntas hari ini, lalu lanjut yang paling berdampak ke nilai.",
		"Langkah aman: kerjain deadline terdekat 30–45 menit, review singkat, lalu update {partner_label}.",
		"Mulai dari yang paling jelas hasilnya. Tuntaskan satu bagian, baru naik level.",
		"Pecah tugas besar jadi 2–3 bagian. Ambil bagian pertama sekarang.",
		"Kalau ragu, pilih tugas yang bikin lega kalau selesai.",
		"Urutan praktis: deadline terdekat → tugas berdampak → review singkat.",
		"Strategi cepat: satu tugas utama, satu tugas pendukung, selesai.",
		"Kerjakan yang paling mengurangi beban pikiran dulu.",
	},
	router.IntentToxicMotivation: {
		"Stop mikir kebanyakan. Pilih satu tugas, kerjain 30 menit, beres.",
		"Nggak perlu mood bagus buat mulai. Mulai dulu, mood nyusul.",
		"Alasan bisa nunggu. Progress nggak.",
		"Fokus {focus_minutes} menit tanpa distraksi. Buktiin ke diri sendiri dulu.",
		"Kecil tapi jadi. Jalan sekarang, bukan nanti.",
		"Disiplin itu pilihan. Pilih yang benar hari ini.",
		"Kerja sunyi, hasil yang berisik.",
		"Kalau gampang ditunda, berarti itu yang harus dikerjain sekarang.",
		"Satu langkah nyata > seribu rencana.",
		"Konsisten itu membosankan, dan itu yang bikin berhasil.",
	},
	router.IntentCreateTask: {
		"Siap, aku bantu buat task. Pastikan judul dan deadline-nya jelas biar langsung tercatat.",
		"Oke, task baru masuk antrean. Kalau ada deadline, sebutin sekalian ya.",
		"Task dicatat. Pecah jadi langkah kecil biar gampang mulai.",
		"Noted, task baru buat {partner_label}. Tentuin kapan mulai ngerjainnya.",
		"Sip, task siap dibuat. Satu tugas jelas lebih gampang dieksekusi.",
	},
	router.IntentCreateAssignment: {
		"Oke, aku siap buat tugas kuliah. Tinggal lengkapi mata kuliah dan deadline-nya.",
		"Assignment baru dicatat. Cicil dari bagian paling gampang biar nggak numpuk di akhir.",
		"Siap, assignment masuk daftar. Sebutin deadline biar prioritasnya tepat.",
		"Tugas kuliah tercatat. Jadwalkan sesi {focus_minutes} menit pertama hari ini.",
		"Noted. Assignment ini kita kawal sampai selesai.",
	},
	router.IntentSetReminder: {
		"Siap, reminder tercatat. Mulai langkah kecil dulu sekarang, lalu update progres.",
		"Oke, aku ingatkan. Sebutin jam atau tanggalnya biar pengingatnya pas.",
		"Reminder disiapkan. Sementara itu, mulai dulu bagian yang paling ringan.",
		"Noted, pengingat buat {partner_label} diatur. Jangan lupa check-in setelahnya.",
		"Pengingat siap dibuat. Fokus {focus_minutes} menit dulu sambil nunggu.",
	},
	router.IntentDailyBrief: {
		"Ringkasan hari ini: cek deadline terdekat, pilih 1 prioritas, lalu jadwalkan satu sesi fokus.",
		"Brief singkat: apa yang harus selesai hari ini, apa yang bisa ditunda, dan kapan check-in.",
		"Rangkuman harian: satu target utama, satu sesi fokus, satu update ke {partner_label}.",
		"Hari ini jangan kebanyakan rencana. Pilih yang paling mendesak dan mulai.",
		"Agenda hari ini: tuntaskan yang urgent dulu, sisanya dijadwalkan ulang dengan jujur.",
	},
	router.IntentEvaluation: {
		"Evaluasi cepat 3 poin: apa yang selesai, apa hambatannya, dan aksi utama berikutnya.",
		"Refleksi singkat: apa yang berhasil hari ini dan apa yang mau diperbaiki besok?",
		"Review jujur aja: target tercapai atau belum? Kalau belum, apa penyebab utamanya?",
		"Evaluasi bareng {partner_label}: satu kemenangan, satu pelajaran, satu rencana.",
		"Tutup hari dengan review: catat progres nyata, lalu siapkan langkah pertama besok.",
	},
	router.IntentStudySchedule: {
		"Bisa. Kasih format ini: \"jadwal belajar besok 150 menit pagi\" biar aku susun sesi paling realistis.",
		"Oke, kita susun jadwal belajar dari waktu kosong. Mulai dengan blok {focus_minutes} menit.",
		"Jadwal belajar siap disusun. Sebutin total menit dan waktunya: pagi, siang, atau malam.",
		"Belajar efektif itu blok pendek yang konsisten. Kita mulai dari satu sesi {focus_minutes} menit.",
		"Siap bikin rencana belajar. Prioritaskan materi yang paling dekat ujian atau deadline.",
	},
	router.IntentAffirmation: {
		"Sip.",
		"Mantap, lanjut.",
		"Oke, gas.",
		"Siap, jalan dulu.",
		"Bagus, momentum dijaga.",
	},
	router.IntentFallback: {
		"Biar tepat, kamu bisa bilang: 'cek target harian', 'rekomendasi tugas', atau 'check-in progres'.",
		"Aku belum nangkep maksudnya. Mau cek target, set reminder, atau update progres?",
		"Coba perintah yang lebih spesifik ya, misalnya minta target hari ini atau rekomendasi tugas.",
		"Kita fokus ke progres. Sebutkan kebutuhanmu: target, reminder, atau check-in.",
		"Kalau bingung, mulai dari 'cek target harian pasangan'.",
		"Perintah belum jelas. Pilih: target, progres, atau rekomendasi.",
		"Gue siap bantu produktivitas. Arahkan permintaanmu dengan jelas.",
		"Butuh bantuan apa sekarang: target, reminder, atau evaluasi?",
	},
}

// Templates returns the reply variants for intent, falling back to the
// fallback list for unknown intents.
func Templates(intent router.Intent) []string {
	if list, ok := templates[intent]; ok && len(list) > 0 {
		return list
	}
	return templates[router.IntentFallback]
}
